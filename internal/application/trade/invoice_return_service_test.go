package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type returnServiceFixture struct {
	invoices  *MockInvoiceRepository
	returns   *MockInvoiceReturnRepository
	products  *MockProductRepository
	sequences *MockDocumentSequenceRepository
	service   *InvoiceReturnService
}

func newReturnServiceFixture() *returnServiceFixture {
	f := &returnServiceFixture{
		invoices:  new(MockInvoiceRepository),
		returns:   new(MockInvoiceReturnRepository),
		products:  new(MockProductRepository),
		sequences: new(MockDocumentSequenceRepository),
	}
	numbers := trade.NewNumberGenerator(f.sequences)
	f.service = NewInvoiceReturnService(f.invoices, f.returns, f.products,
		numbers, 5*time.Second, zap.NewNop())
	return f
}

func soldInvoice(t *testing.T, ownerID, productID uuid.UUID, quantity int64) *trade.Invoice {
	t.Helper()
	invoice, err := trade.NewInvoice(ownerID, "INV-2608280001", true, nil,
		[]trade.InvoiceLineInput{{ProductID: productID, Quantity: quantity, Price: decimal.NewFromInt(10)}},
		nil, decimal.Zero, "cash", decimal.NewFromInt(10*quantity), "")
	require.NoError(t, err)
	return invoice
}

func TestInvoiceReturnService_Create(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("full return restocks and marks the invoice returned", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 3)

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)
		f.returns.On("FindByInvoice", mock.Anything, ownerID, invoice.ID).Return([]trade.InvoiceReturn{}, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindReturn, mock.Anything).Return(int64(1), nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(3)).Return(testProduct(t, ownerID, 3), nil)
		f.returns.On("Create", mock.Anything, mock.AnythingOfType("*trade.InvoiceReturn")).Return(nil)
		f.invoices.On("UpdateReturnState", mock.Anything, invoice).Return(nil)

		resp, err := f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: productID, Quantity: 3, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(30),
		})

		require.NoError(t, err)
		assert.Equal(t, "Returned", resp.InvoiceStatus)
		assert.Contains(t, resp.ReturnNumber, "RET-")
		assert.True(t, invoice.IsReturned())
		f.products.AssertCalled(t, "Restock", mock.Anything, ownerID, productID, int64(3))
	})

	t.Run("partial return leaves the invoice partially returned", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 5)

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)
		f.returns.On("FindByInvoice", mock.Anything, ownerID, invoice.ID).Return([]trade.InvoiceReturn{}, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindReturn, mock.Anything).Return(int64(1), nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(2)).Return(testProduct(t, ownerID, 2), nil)
		f.returns.On("Create", mock.Anything, mock.AnythingOfType("*trade.InvoiceReturn")).Return(nil)
		f.invoices.On("UpdateReturnState", mock.Anything, invoice).Return(nil)

		resp, err := f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(20),
		})

		require.NoError(t, err)
		assert.Equal(t, "Partially Returned", resp.InvoiceStatus)
	})

	t.Run("counts earlier returns against the remaining quantity", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 5)

		prior, err := trade.NewInvoiceReturn(ownerID, "RET-2608280001", invoice.ID,
			[]trade.ReturnLineInput{{ProductID: productID, Quantity: 4, Price: decimal.NewFromInt(10)}},
			"cash", decimal.NewFromInt(40), "")
		require.NoError(t, err)

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)
		f.returns.On("FindByInvoice", mock.Anything, ownerID, invoice.ID).Return([]trade.InvoiceReturn{*prior}, nil)

		_, err = f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(20),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		f.products.AssertNotCalled(t, "Restock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects products not on the invoice", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 5)

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)
		f.returns.On("FindByInvoice", mock.Anything, ownerID, invoice.ID).Return([]trade.InvoiceReturn{}, nil)

		_, err := f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(10),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects a fully returned invoice", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 1)
		require.NoError(t, invoice.RecordReturn(uuid.New(), true))

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)

		_, err := f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(10),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("status update failure unwinds the return and the stock", func(t *testing.T) {
		f := newReturnServiceFixture()
		productID := uuid.New()
		invoice := soldInvoice(t, ownerID, productID, 2)

		f.invoices.On("FindByNumberForOwner", mock.Anything, ownerID, invoice.InvoiceNumber).Return(invoice, nil)
		f.returns.On("FindByInvoice", mock.Anything, ownerID, invoice.ID).Return([]trade.InvoiceReturn{}, nil)
		f.sequences.On("Next", mock.Anything, ownerID, trade.DocumentKindReturn, mock.Anything).Return(int64(1), nil)
		f.products.On("Restock", mock.Anything, ownerID, productID, int64(2)).Return(testProduct(t, ownerID, 2), nil)
		f.products.On("DeductStock", mock.Anything, ownerID, productID, int64(2)).Return(testProduct(t, ownerID, 0), nil)
		f.returns.On("Create", mock.Anything, mock.AnythingOfType("*trade.InvoiceReturn")).Return(nil)
		f.returns.On("DeleteForOwner", mock.Anything, ownerID, mock.Anything).Return(nil)
		f.invoices.On("UpdateReturnState", mock.Anything, invoice).Return(errors.New("write conflict"))

		_, err := f.service.Create(ctx, ownerID, CreateInvoiceReturnRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Lines: []ReturnLineRequest{
				{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(10)},
			},
			RefundMethod:   "cash",
			AmountRefunded: decimal.NewFromInt(20),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrPersistenceFailure))
		f.returns.AssertCalled(t, "DeleteForOwner", mock.Anything, ownerID, mock.Anything)
		f.products.AssertCalled(t, "DeductStock", mock.Anything, ownerID, productID, int64(2))
	})
}
