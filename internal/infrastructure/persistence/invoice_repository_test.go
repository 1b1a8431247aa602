package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceTestRepo(t *testing.T) *GormInvoiceRepository {
	t.Helper()
	db := newTestDB(t, &trade.Invoice{}, &trade.InvoiceItem{}, &trade.InvoiceTax{})
	return NewGormInvoiceRepository(db)
}

func buildInvoice(t *testing.T, ownerID uuid.UUID, number string) *trade.Invoice {
	t.Helper()
	customerID := uuid.New()
	invoice, err := trade.NewInvoice(ownerID, number, false, &customerID,
		[]trade.InvoiceLineInput{
			{ProductID: uuid.New(), Quantity: 3, Price: decimal.NewFromInt(10)},
			{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(25)},
		},
		[]trade.TaxChargeInput{
			{TaxID: uuid.New(), Name: "VAT", Rate: decimal.NewFromInt(10)},
		},
		decimal.Zero, "cash", decimal.NewFromInt(60), "")
	require.NoError(t, err)
	return invoice
}

func TestGormInvoiceRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newInvoiceTestRepo(t)

	invoice := buildInvoice(t, ownerID, "INV-2608280001")
	require.NoError(t, repo.Create(ctx, invoice))

	found, err := repo.FindByNumberForOwner(ctx, ownerID, "INV-2608280001")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, found.ID)
	assert.Len(t, found.Items, 2)
	assert.Len(t, found.Taxes, 1)
	assert.True(t, found.Total.Equal(invoice.Total))
	assert.Equal(t, trade.InvoiceStatusCompleted, found.Status)

	_, err = repo.FindByNumberForOwner(ctx, uuid.New(), "INV-2608280001")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_UpdateReturnState(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newInvoiceTestRepo(t)

	invoice := buildInvoice(t, ownerID, "INV-2608280002")
	require.NoError(t, repo.Create(ctx, invoice))

	returnID := uuid.New()
	require.NoError(t, invoice.RecordReturn(returnID, false))
	require.NoError(t, repo.UpdateReturnState(ctx, invoice))

	found, err := repo.FindByIDForOwner(ctx, ownerID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.InvoiceStatusPartiallyReturned, found.Status)
	require.NotNil(t, found.ReturnID)
	assert.Equal(t, returnID, *found.ReturnID)
}

func TestGormInvoiceRepository_DeleteForOwner(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newInvoiceTestRepo(t)

	invoice := buildInvoice(t, ownerID, "INV-2608280003")
	require.NoError(t, repo.Create(ctx, invoice))

	require.NoError(t, repo.DeleteForOwner(ctx, ownerID, invoice.ID))

	_, err := repo.FindByIDForOwner(ctx, ownerID, invoice.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Line items go with the document
	var itemCount int64
	require.NoError(t, repo.db.Model(&trade.InvoiceItem{}).
		Where("invoice_id = ?", invoice.ID).
		Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestGormInvoiceRepository_FindAllForOwner(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newInvoiceTestRepo(t)

	require.NoError(t, repo.Create(ctx, buildInvoice(t, ownerID, "INV-2608280004")))
	require.NoError(t, repo.Create(ctx, buildInvoice(t, ownerID, "INV-2608280005")))
	require.NoError(t, repo.Create(ctx, buildInvoice(t, uuid.New(), "INV-2608280006")))

	filter := shared.NewFilter(1, 20)
	invoices, err := repo.FindAllForOwner(ctx, ownerID, filter)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	filter.Search = "0005"
	invoices, err = repo.FindAllForOwner(ctx, ownerID, filter)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-2608280005", invoices[0].InvoiceNumber)
}
