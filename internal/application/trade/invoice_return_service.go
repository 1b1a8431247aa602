package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// InvoiceReturnService orchestrates returns against sale documents: line
// validation against the parent invoice, stock restoration, return
// persistence and the invoice status transition.
type InvoiceReturnService struct {
	invoices trade.InvoiceRepository
	returns  trade.InvoiceReturnRepository
	products catalog.ProductRepository
	numbers  *trade.NumberGenerator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewInvoiceReturnService creates a new InvoiceReturnService
func NewInvoiceReturnService(
	invoices trade.InvoiceRepository,
	returns trade.InvoiceReturnRepository,
	products catalog.ProductRepository,
	numbers *trade.NumberGenerator,
	timeout time.Duration,
	logger *zap.Logger,
) *InvoiceReturnService {
	return &InvoiceReturnService{
		invoices: invoices,
		returns:  returns,
		products: products,
		numbers:  numbers,
		timeout:  timeout,
		logger:   logger,
	}
}

// Create runs the return transaction against the referenced invoice
func (s *InvoiceReturnService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceReturnRequest) (*InvoiceReturnResponse, error) {
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

func (s *InvoiceReturnService) create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceReturnRequest, undo *compensationLog) (*InvoiceReturnResponse, error) {
	invoice, err := s.invoices.FindByNumberForOwner(ctx, ownerID, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice.IsReturned() {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoice has already been fully returned")
	}

	// Quantities already returned on earlier return documents count against
	// what may still come back.
	returned, err := s.returnedQuantities(ctx, ownerID, invoice.ID)
	if err != nil {
		return nil, err
	}

	requested := make(map[uuid.UUID]int64, len(req.Lines))
	for _, line := range req.Lines {
		item := invoice.ItemByProduct(line.ProductID)
		if item == nil {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Product %s is not on invoice %s", line.ProductID, invoice.InvoiceNumber)
		}
		requested[line.ProductID] += line.Quantity
		remaining := item.Quantity - returned[line.ProductID]
		if requested[line.ProductID] > remaining {
			return nil, shared.NewDomainErrorf("INVALID_INPUT",
				"Cannot return %d of product %s, only %d remaining", requested[line.ProductID], line.ProductID, remaining)
		}
	}

	number, err := s.numbers.Next(ctx, ownerID, trade.DocumentKindReturn)
	if err != nil {
		return nil, err
	}

	lines := make([]trade.ReturnLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, trade.ReturnLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	ret, err := trade.NewInvoiceReturn(ownerID, number, invoice.ID, lines,
		req.RefundMethod, req.AmountRefunded, req.Notes)
	if err != nil {
		return nil, err
	}

	// Returned goods go back into stock line by line, each with its own
	// inverse deduction.
	for _, line := range req.Lines {
		productID, quantity := line.ProductID, line.Quantity
		if _, err := s.products.Restock(ctx, ownerID, productID, quantity); err != nil {
			return nil, err
		}
		undo.record(fmt.Sprintf("deduct restocked product %s", productID), func(ctx context.Context) error {
			_, err := s.products.DeductStock(ctx, ownerID, productID, quantity)
			return err
		})
	}

	if err := s.returns.Create(ctx, ret); err != nil {
		return nil, err
	}
	undo.record("delete return document", func(ctx context.Context) error {
		return s.returns.DeleteForOwner(ctx, ownerID, ret.ID)
	})

	fullyReturned := s.isFullyReturned(invoice, returned, requested)
	if err := invoice.RecordReturn(ret.ID, fullyReturned); err != nil {
		return nil, err
	}
	if err := s.invoices.UpdateReturnState(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice return created",
		zap.String("return_number", ret.ReturnNumber),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("owner_id", ownerID.String()),
		zap.Bool("fully_returned", fullyReturned),
	)

	return ToInvoiceReturnResponse(ret, invoice.Status), nil
}

// GetByID returns the return document with the given ID
func (s *InvoiceReturnService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceReturnResponse, error) {
	ret, err := s.returns.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.FindByIDForOwner(ctx, ownerID, ret.InvoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceReturnResponse(ret, invoice.Status), nil
}

// ListForInvoice returns all return documents recorded against an invoice
func (s *InvoiceReturnService) ListForInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]InvoiceReturnResponse, error) {
	invoice, err := s.invoices.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	rets, err := s.returns.FindByInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceReturnResponse, 0, len(rets))
	for i := range rets {
		out = append(out, *ToInvoiceReturnResponse(&rets[i], invoice.Status))
	}
	return out, nil
}

// returnedQuantities sums prior returns per product for the invoice
func (s *InvoiceReturnService) returnedQuantities(ctx context.Context, ownerID, invoiceID uuid.UUID) (map[uuid.UUID]int64, error) {
	prior, err := s.returns.FindByInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]int64)
	for i := range prior {
		for _, item := range prior[i].Items {
			totals[item.ProductID] += item.Quantity
		}
	}
	return totals, nil
}

// isFullyReturned reports whether, after applying the requested quantities,
// every invoice line has come back in full.
func (s *InvoiceReturnService) isFullyReturned(invoice *trade.Invoice, returned, requested map[uuid.UUID]int64) bool {
	for _, item := range invoice.Items {
		if returned[item.ProductID]+requested[item.ProductID] < item.Quantity {
			return false
		}
	}
	return true
}
