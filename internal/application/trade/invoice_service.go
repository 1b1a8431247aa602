package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// InvoiceService orchestrates sale document creation and its side effects:
// customer resolution, stock deduction, balance updates and invoice
// persistence. Committed side effects are compensated in reverse order when
// a later step fails, so a failed request leaves no net state change.
type InvoiceService struct {
	invoices trade.InvoiceRepository
	products catalog.ProductRepository
	taxes    catalog.TaxRepository
	resolver partyResolver
	numbers  *trade.NumberGenerator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. timeout bounds the whole
// transaction including side effects.
func NewInvoiceService(
	invoices trade.InvoiceRepository,
	products catalog.ProductRepository,
	taxes catalog.TaxRepository,
	customers partner.CustomerRepository,
	numbers *trade.NumberGenerator,
	timeout time.Duration,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		products: products,
		taxes:    taxes,
		resolver: partyResolver{customers: customers},
		numbers:  numbers,
		timeout:  timeout,
		logger:   logger,
	}
}

// Create runs the invoice transaction. Steps are ordered so the cheapest
// checks fail first and every committed side effect has a recorded inverse.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	undo := newCompensationLog(s.logger)
	resp, err := s.create(ctx, ownerID, req, undo)
	if err != nil {
		undo.compensate(ctx, err)
		return nil, asTransactionError(err)
	}
	return resp, nil
}

func (s *InvoiceService) create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest, undo *compensationLog) (*InvoiceResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice requires at least one line item")
	}

	// Resolve the customer first: it is required for non-quick sales and
	// creating one is cheap to undo.
	var customerID *uuid.UUID
	var customer *partner.Customer
	if !req.IsQuickSale {
		if req.Customer == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Customer details are required for non-quick sales")
		}
		resolved, created, err := s.resolver.resolveCustomer(ctx, ownerID, *req.Customer)
		if err != nil {
			return nil, err
		}
		customer = resolved
		customerID = &resolved.ID
		if created {
			id := resolved.ID
			undo.record("delete created customer", func(ctx context.Context) error {
				return s.resolver.customers.DeleteForOwner(ctx, ownerID, id)
			})
		}
	}

	// Tax rates come from the owner's tax records, never from the caller
	charges, err := resolveTaxCharges(ctx, s.taxes, ownerID, req.TaxIDs)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, ownerID, trade.DocumentKindInvoice)
	if err != nil {
		return nil, err
	}

	lines := make([]trade.InvoiceLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, trade.InvoiceLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	invoice, err := trade.NewInvoice(ownerID, number, req.IsQuickSale, customerID,
		lines, charges, req.Discount, req.PaymentMethod, req.AmountPaid, req.Notes)
	if err != nil {
		return nil, err
	}

	// Deduct stock line by line. Each successful deduction gets its own
	// restock undo so a failure mid-list only reverses what was applied.
	for _, line := range req.Lines {
		productID, quantity := line.ProductID, line.Quantity
		if _, err := s.products.DeductStock(ctx, ownerID, productID, quantity); err != nil {
			return nil, err
		}
		undo.record(fmt.Sprintf("restock product %s", productID), func(ctx context.Context) error {
			_, err := s.products.Restock(ctx, ownerID, productID, quantity)
			return err
		})
	}

	// The unpaid part of the sale goes onto the customer's running balance.
	// The delta is applied in the store so a concurrent settlement is not
	// lost, and the compensation applies the inverse delta the same way.
	if customer != nil {
		owed := invoice.Total.Sub(req.AmountPaid)
		if !owed.IsZero() {
			customerID := customer.ID
			if _, err := s.resolver.customers.ApplyBalanceDelta(ctx, ownerID, customerID, owed); err != nil {
				return nil, err
			}
			undo.record("reverse customer balance", func(ctx context.Context) error {
				_, err := s.resolver.customers.ApplyBalanceDelta(ctx, ownerID, customerID, owed.Neg())
				return err
			})
		}
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("owner_id", ownerID.String()),
		zap.Int("lines", len(invoice.Items)),
		zap.String("total", invoice.Total.String()),
	)

	return ToInvoiceResponse(invoice), nil
}

// GetByNumber returns the invoice with the given document number
func (s *InvoiceService) GetByNumber(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByNumberForOwner(ctx, ownerID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByID returns the invoice with the given ID
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// ListForCustomer returns all invoices billed to the given customer
func (s *InvoiceService) ListForCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindByCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}
	resp := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, *ToInvoiceResponse(&invoices[i]))
	}
	return resp, nil
}

// List returns a page of the owner's invoices
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*InvoiceListResponse, error) {
	invoices, err := s.invoices.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &InvoiceListResponse{
		Items:      make([]InvoiceResponse, 0, len(invoices)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range invoices {
		resp.Items = append(resp.Items, *ToInvoiceResponse(&invoices[i]))
	}
	return resp, nil
}

// resolveTaxCharges loads the referenced tax records and snapshots their
// rates. Inactive taxes are rejected rather than silently skipped.
func resolveTaxCharges(ctx context.Context, taxes catalog.TaxRepository, ownerID uuid.UUID, taxIDs []uuid.UUID) ([]trade.TaxChargeInput, error) {
	if len(taxIDs) == 0 {
		return nil, nil
	}
	charges := make([]trade.TaxChargeInput, 0, len(taxIDs))
	for _, taxID := range taxIDs {
		tax, err := taxes.FindByIDForOwner(ctx, ownerID, taxID)
		if err != nil {
			return nil, err
		}
		if !tax.IsActive {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Tax %s is not active", tax.Name)
		}
		charges = append(charges, trade.TaxChargeInput{
			TaxID: tax.ID,
			Name:  tax.Name,
			Rate:  tax.Rate,
		})
	}
	return charges, nil
}

// asTransactionError normalizes infrastructure failures surfaced by an
// aborted transaction. A deadline hit mid-transaction reports as a
// persistence failure, not as caller error.
func asTransactionError(err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return shared.NewDomainError("PERSISTENCE_FAILURE", "Transaction timed out")
	}
	return shared.NewDomainError("PERSISTENCE_FAILURE", "Persistent store operation failed")
}
