package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService orchestrates procurement document creation: supplier
// resolution, stock receipt, product pricing updates, supplier balance and
// purchase persistence, with reverse-order compensation on failure.
type PurchaseService struct {
	purchases trade.PurchaseRepository
	products  catalog.ProductRepository
	taxes     catalog.TaxRepository
	resolver  partyResolver
	numbers   *trade.NumberGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchases trade.PurchaseRepository,
	products catalog.ProductRepository,
	taxes catalog.TaxRepository,
	suppliers partner.SupplierRepository,
	numbers *trade.NumberGenerator,
	timeout time.Duration,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		products:  products,
		taxes:     taxes,
		resolver:  partyResolver{suppliers: suppliers},
		numbers:   numbers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Create runs the purchase transaction against existing catalog products
func (s *PurchaseService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	undo := newCompensationLog(s.logger)
	resp, err := s.create(ctx, ownerID, req.Supplier, req.Date, req.Lines, req.TaxIDs,
		req.PaymentMethod, req.AmountPaid, req.Notes, undo)
	if err != nil {
		undo.compensate(ctx, err)
		return nil, asTransactionError(err)
	}
	return resp, nil
}

// CreateWithNewProducts runs the purchase transaction where some lines
// introduce products not yet in the catalog. New products are created first
// with zero stock; the receipt step then stocks them like any other line.
func (s *PurchaseService) CreateWithNewProducts(ctx context.Context, ownerID uuid.UUID, req CreatePurchaseWithNewProductsRequest) (*PurchaseResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	undo := newCompensationLog(s.logger)
	resp, err := s.createWithNewProducts(ctx, ownerID, req, undo)
	if err != nil {
		undo.compensate(ctx, err)
		return nil, asTransactionError(err)
	}
	return resp, nil
}

func (s *PurchaseService) createWithNewProducts(ctx context.Context, ownerID uuid.UUID, req CreatePurchaseWithNewProductsRequest, undo *compensationLog) (*PurchaseResponse, error) {
	if len(req.Lines) == 0 && len(req.NewProducts) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one line item")
	}

	lines := make([]PurchaseLineRequest, 0, len(req.Lines)+len(req.NewProducts))
	lines = append(lines, req.Lines...)

	for _, np := range req.NewProducts {
		product, err := catalog.NewProduct(ownerID, np.Name, np.Category, np.Company,
			np.UnitPrice, np.RetailPrice, np.WholesalePrice, 0)
		if err != nil {
			return nil, err
		}
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}
		id := product.ID
		undo.record(fmt.Sprintf("delete created product %s", id), func(ctx context.Context) error {
			return s.products.DeleteForOwner(ctx, ownerID, id)
		})

		retail, wholesale := np.RetailPrice, np.WholesalePrice
		lines = append(lines, PurchaseLineRequest{
			ProductID:      product.ID,
			Quantity:       np.Quantity,
			UnitPrice:      np.UnitPrice,
			RetailPrice:    &retail,
			WholesalePrice: &wholesale,
		})
	}

	return s.create(ctx, ownerID, req.Supplier, req.Date, lines, req.TaxIDs,
		req.PaymentMethod, req.AmountPaid, req.Notes, undo)
}

func (s *PurchaseService) create(ctx context.Context, ownerID uuid.UUID, supplierInput PartyInput,
	date time.Time, reqLines []PurchaseLineRequest, taxIDs []uuid.UUID,
	paymentMethod string, amountPaid decimal.Decimal, notes string, undo *compensationLog) (*PurchaseResponse, error) {

	if len(reqLines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one line item")
	}

	supplier, created, err := s.resolver.resolveSupplier(ctx, ownerID, supplierInput)
	if err != nil {
		return nil, err
	}
	if created {
		id := supplier.ID
		undo.record("delete created supplier", func(ctx context.Context) error {
			return s.resolver.suppliers.DeleteForOwner(ctx, ownerID, id)
		})
	}

	charges, err := resolveTaxCharges(ctx, s.taxes, ownerID, taxIDs)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, ownerID, trade.DocumentKindPurchase)
	if err != nil {
		return nil, err
	}

	// Snapshot current selling prices per line; a line may also carry new
	// prices that get applied to the product as part of the receipt.
	lines := make([]trade.PurchaseLineInput, 0, len(reqLines))
	for _, line := range reqLines {
		product, err := s.products.FindByIDForOwner(ctx, ownerID, line.ProductID)
		if err != nil {
			return nil, err
		}

		retail, wholesale := product.RetailPrice, product.WholesalePrice
		if line.RetailPrice != nil {
			retail = *line.RetailPrice
		}
		if line.WholesalePrice != nil {
			wholesale = *line.WholesalePrice
		}

		if !retail.Equal(product.RetailPrice) || !wholesale.Equal(product.WholesalePrice) || !line.UnitPrice.Equal(product.Cost) {
			prevCost, prevRetail, prevWholesale := product.Cost, product.RetailPrice, product.WholesalePrice
			if err := product.UpdatePricing(line.UnitPrice, retail, wholesale); err != nil {
				return nil, err
			}
			if err := s.products.Update(ctx, product); err != nil {
				return nil, err
			}
			productID := product.ID
			undo.record(fmt.Sprintf("restore pricing of product %s", productID), func(ctx context.Context) error {
				current, err := s.products.FindByIDForOwner(ctx, ownerID, productID)
				if err != nil {
					return err
				}
				if err := current.UpdatePricing(prevCost, prevRetail, prevWholesale); err != nil {
					return err
				}
				return s.products.Update(ctx, current)
			})
		}

		lines = append(lines, trade.PurchaseLineInput{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			RetailPrice:    retail,
			WholesalePrice: wholesale,
		})
	}

	purchase, err := trade.NewPurchase(ownerID, number, supplier.ID, date, lines,
		charges, paymentMethod, amountPaid, notes)
	if err != nil {
		return nil, err
	}

	// Received goods go into stock line by line, each with its own inverse
	// deduction.
	for _, line := range lines {
		productID, quantity := line.ProductID, line.Quantity
		if _, err := s.products.Restock(ctx, ownerID, productID, quantity); err != nil {
			return nil, err
		}
		undo.record(fmt.Sprintf("deduct received product %s", productID), func(ctx context.Context) error {
			_, err := s.products.DeductStock(ctx, ownerID, productID, quantity)
			return err
		})
	}

	// The unpaid part of the purchase goes onto the supplier's balance. The
	// delta is applied in the store so a concurrent settlement is not lost.
	if !purchase.BalanceDue.IsZero() {
		if _, err := s.resolver.suppliers.ApplyBalanceDelta(ctx, ownerID, supplier.ID, purchase.BalanceDue); err != nil {
			return nil, err
		}
		owed, supplierID := purchase.BalanceDue, supplier.ID
		undo.record("reverse supplier balance", func(ctx context.Context) error {
			_, err := s.resolver.suppliers.ApplyBalanceDelta(ctx, ownerID, supplierID, owed.Neg())
			return err
		})
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("owner_id", ownerID.String()),
		zap.Int("lines", len(purchase.Items)),
		zap.String("total", purchase.Total.String()),
		zap.String("balance_due", purchase.BalanceDue.String()),
	)

	return ToPurchaseResponse(purchase), nil
}

// GetByNumber returns the purchase with the given document number
func (s *PurchaseService) GetByNumber(ctx context.Context, ownerID uuid.UUID, purchaseNumber string) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByNumberForOwner(ctx, ownerID, purchaseNumber)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// GetByID returns the purchase with the given ID
func (s *PurchaseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// ListForSupplier returns all purchases received from the given supplier
func (s *PurchaseService) ListForSupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]PurchaseResponse, error) {
	purchases, err := s.purchases.FindBySupplier(ctx, ownerID, supplierID)
	if err != nil {
		return nil, err
	}
	resp := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		resp = append(resp, *ToPurchaseResponse(&purchases[i]))
	}
	return resp, nil
}

// List returns a page of the owner's purchases
func (s *PurchaseService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*PurchaseListResponse, error) {
	purchases, err := s.purchases.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchases.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &PurchaseListResponse{
		Items:      make([]PurchaseResponse, 0, len(purchases)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range purchases {
		resp.Items = append(resp.Items, *ToPurchaseResponse(&purchases[i]))
	}
	return resp, nil
}
