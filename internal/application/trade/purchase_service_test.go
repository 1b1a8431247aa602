package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purchaseServiceFixture struct {
	purchases *MockPurchaseRepository
	products  *MockProductRepository
	taxes     *MockTaxRepository
	suppliers *MockSupplierRepository
	sequences *MockDocumentSequenceRepository
	service   *PurchaseService
}

func newPurchaseServiceFixture() *purchaseServiceFixture {
	f := &purchaseServiceFixture{
		purchases: new(MockPurchaseRepository),
		products:  new(MockProductRepository),
		taxes:     new(MockTaxRepository),
		suppliers: new(MockSupplierRepository),
		sequences: new(MockDocumentSequenceRepository),
	}
	numbers := trade.NewNumberGenerator(f.sequences)
	f.service = NewPurchaseService(f.purchases, f.products, f.taxes, f.suppliers,
		numbers, 5*time.Second, zap.NewNop())
	return f
}

func TestPurchaseService_Create(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("creates the supplier and books the unpaid balance", func(t *testing.T) {
		f := newPurchaseServiceFixture()
		productID := uuid.New()
		product := testProduct(t, ownerID, 2)

		f.suppliers.On("FindByNameAndPhone", mock.Anything, ownerID, "Golden Star", "0955").Return(nil, shared.ErrNotFound)
		f.suppliers.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)
		f.suppliers.On("ApplyBalanceDelta", mock.Anything, ownerID, mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(20))
		})).Return(&partner.Supplier{}, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindPurchase, mock.Anything).Return(int64(1), nil)
		f.products.On("FindByIDForOwner", mock.Anything, ownerID, productID).Return(product, nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(10)).Return(product, nil)
		f.purchases.On("Create", mock.Anything, mock.AnythingOfType("*trade.Purchase")).Return(nil)

		resp, err := f.service.Create(ctx, ownerID, CreatePurchaseRequest{
			Supplier: PartyInput{Name: "Golden Star", PhoneNumber: "0955"},
			Lines: []PurchaseLineRequest{
				{ProductID: productID, Quantity: 10, UnitPrice: decimal.NewFromInt(6)},
			},
			PaymentMethod: "credit",
			AmountPaid:    decimal.NewFromInt(40),
		})

		require.NoError(t, err)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(60)))
		assert.True(t, resp.BalanceDue.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "Pending", resp.Status)
		assert.Contains(t, resp.PurchaseNumber, "PUR-")

		// the unpaid 20 lands on the new supplier's balance
		f.suppliers.AssertCalled(t, "ApplyBalanceDelta", mock.Anything, ownerID, mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(20))
		}))
	})

	t.Run("paid in full leaves the supplier balance alone", func(t *testing.T) {
		f := newPurchaseServiceFixture()
		productID := uuid.New()
		product := testProduct(t, ownerID, 2)
		supplier, err := partner.NewSupplier(ownerID, "Golden Star", "0955", "", "")
		require.NoError(t, err)

		f.suppliers.On("FindByIDForOwner", mock.Anything, ownerID, supplier.ID).Return(supplier, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindPurchase, mock.Anything).Return(int64(2), nil)
		f.products.On("FindByIDForOwner", mock.Anything, ownerID, productID).Return(product, nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(5)).Return(product, nil)
		f.purchases.On("Create", mock.Anything, mock.AnythingOfType("*trade.Purchase")).Return(nil)

		resp, err := f.service.Create(ctx, ownerID, CreatePurchaseRequest{
			Supplier: PartyInput{ID: &supplier.ID},
			Lines: []PurchaseLineRequest{
				{ProductID: productID, Quantity: 5, UnitPrice: decimal.NewFromInt(6)},
			},
			PaymentMethod: "cash",
			AmountPaid:    decimal.NewFromInt(30),
		})

		require.NoError(t, err)
		assert.Equal(t, "Completed", resp.Status)
		f.suppliers.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("persistence failure reverses stock and removes the created supplier", func(t *testing.T) {
		f := newPurchaseServiceFixture()
		productID := uuid.New()
		product := testProduct(t, ownerID, 2)

		f.suppliers.On("FindByNameAndPhone", mock.Anything, ownerID, "Golden Star", "0955").Return(nil, shared.ErrNotFound)
		f.suppliers.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)
		f.suppliers.On("FindByIDForOwner", mock.Anything, ownerID, mock.Anything).Return(nil, shared.ErrNotFound)
		f.suppliers.On("DeleteForOwner", mock.Anything, ownerID, mock.Anything).Return(nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindPurchase, mock.Anything).Return(int64(3), nil)
		f.products.On("FindByIDForOwner", mock.Anything, ownerID, productID).Return(product, nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(10)).Return(product, nil)
		f.products.On("DeductStock", mock.Anything, ownerID, productID, int64(10)).Return(product, nil)
		f.purchases.On("Create", mock.Anything, mock.AnythingOfType("*trade.Purchase")).Return(errors.New("disk full"))

		_, err := f.service.Create(ctx, ownerID, CreatePurchaseRequest{
			Supplier: PartyInput{Name: "Golden Star", PhoneNumber: "0955"},
			Lines: []PurchaseLineRequest{
				{ProductID: productID, Quantity: 10, UnitPrice: decimal.NewFromInt(6)},
			},
			PaymentMethod: "cash",
			AmountPaid:    decimal.NewFromInt(60),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrPersistenceFailure))
		f.products.AssertCalled(t, "DeductStock", mock.Anything, ownerID, productID, int64(10))
		f.suppliers.AssertCalled(t, "DeleteForOwner", mock.Anything, ownerID, mock.Anything)
	})

	t.Run("rejects an empty line set", func(t *testing.T) {
		f := newPurchaseServiceFixture()

		_, err := f.service.Create(ctx, ownerID, CreatePurchaseRequest{
			Supplier:      PartyInput{Name: "Golden Star", PhoneNumber: "0955"},
			PaymentMethod: "cash",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestPurchaseService_CreateWithNewProducts(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("creates products then stocks them through the receipt", func(t *testing.T) {
		f := newPurchaseServiceFixture()
		supplier, err := partner.NewSupplier(ownerID, "Golden Star", "0955", "", "")
		require.NoError(t, err)

		lamp, err := catalog.NewProduct(ownerID, "Lamp", "Lighting", "Acme",
			decimal.NewFromInt(6), decimal.NewFromInt(12), decimal.NewFromInt(9), 0)
		require.NoError(t, err)

		var createdID uuid.UUID
		f.suppliers.On("FindByIDForOwner", mock.Anything, ownerID, supplier.ID).Return(supplier, nil)
		f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Run(func(args mock.Arguments) {
			createdID = args.Get(1).(*catalog.Product).ID
		}).Return(nil)
		f.products.On("FindByIDForOwner", mock.Anything, ownerID, mock.Anything).Return(lamp, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindPurchase, mock.Anything).Return(int64(1), nil)
		f.products.On("Restock", mock.Anything, ownerID, mock.Anything, int64(4)).Return(&catalog.Product{}, nil)
		f.purchases.On("Create", mock.Anything, mock.AnythingOfType("*trade.Purchase")).Return(nil)

		resp, err := f.service.CreateWithNewProducts(ctx, ownerID, CreatePurchaseWithNewProductsRequest{
			Supplier: PartyInput{ID: &supplier.ID},
			NewProducts: []NewProductPurchaseLineRequest{
				{Name: "Lamp", Category: "Lighting", Company: "Acme", Quantity: 4,
					UnitPrice: decimal.NewFromInt(6), RetailPrice: decimal.NewFromInt(12), WholesalePrice: decimal.NewFromInt(9)},
			},
			PaymentMethod: "cash",
			AmountPaid:    decimal.NewFromInt(24),
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, createdID, resp.Items[0].ProductID)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(24)))
		f.products.AssertCalled(t, "Restock", mock.Anything, ownerID, createdID, int64(4))
	})

	t.Run("receipt failure deletes the created product", func(t *testing.T) {
		f := newPurchaseServiceFixture()
		supplier, err := partner.NewSupplier(ownerID, "Golden Star", "0955", "", "")
		require.NoError(t, err)

		lamp, err := catalog.NewProduct(ownerID, "Lamp", "Lighting", "Acme",
			decimal.NewFromInt(6), decimal.NewFromInt(12), decimal.NewFromInt(9), 0)
		require.NoError(t, err)

		f.suppliers.On("FindByIDForOwner", mock.Anything, ownerID, supplier.ID).Return(supplier, nil)
		f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		f.products.On("FindByIDForOwner", mock.Anything, ownerID, mock.Anything).Return(lamp, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindPurchase, mock.Anything).Return(int64(1), nil)
		f.products.On("Restock", mock.Anything, ownerID, mock.Anything, int64(4)).Return(nil, shared.ErrPersistenceFailure)
		f.products.On("DeleteForOwner", mock.Anything, ownerID, mock.Anything).Return(nil)

		_, err = f.service.CreateWithNewProducts(ctx, ownerID, CreatePurchaseWithNewProductsRequest{
			Supplier: PartyInput{ID: &supplier.ID},
			NewProducts: []NewProductPurchaseLineRequest{
				{Name: "Lamp", Category: "Lighting", Company: "Acme", Quantity: 4,
					UnitPrice: decimal.NewFromInt(6), RetailPrice: decimal.NewFromInt(12), WholesalePrice: decimal.NewFromInt(9)},
			},
			PaymentMethod: "cash",
			AmountPaid:    decimal.NewFromInt(24),
		})

		require.Error(t, err)
		f.products.AssertCalled(t, "DeleteForOwner", mock.Anything, ownerID, mock.Anything)
		f.purchases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
