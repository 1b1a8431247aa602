package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoiceReturn(t *testing.T) {
	ownerID := uuid.New()
	invoiceID := uuid.New()
	productID := uuid.New()

	t.Run("computes subtotal and takes refund as total", func(t *testing.T) {
		ret, err := NewInvoiceReturn(ownerID, "RET-2608280001", invoiceID,
			[]ReturnLineInput{
				{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(10)},
			},
			"cash", decimal.NewFromInt(20), "damaged box")

		require.NoError(t, err)
		assert.True(t, ret.Subtotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, ret.Total.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, ReturnStatusCompleted, ret.Status)
		assert.Equal(t, invoiceID, ret.InvoiceID)
	})

	t.Run("refund may differ from line subtotal", func(t *testing.T) {
		// restocking fee withheld from the refund
		ret, err := NewInvoiceReturn(ownerID, "RET-2608280002", invoiceID,
			[]ReturnLineInput{
				{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(100)},
			},
			"card", decimal.NewFromInt(90), "")

		require.NoError(t, err)
		assert.True(t, ret.Subtotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, ret.Total.Equal(decimal.NewFromInt(90)))
	})

	t.Run("validation failures", func(t *testing.T) {
		lines := []ReturnLineInput{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(5)}}

		_, err := NewInvoiceReturn(ownerID, "", invoiceID, lines, "cash", decimal.Zero, "")
		assert.Error(t, err, "empty number")

		_, err = NewInvoiceReturn(ownerID, "RET-2608280003", uuid.Nil, lines, "cash", decimal.Zero, "")
		assert.Error(t, err, "missing invoice")

		_, err = NewInvoiceReturn(ownerID, "RET-2608280003", invoiceID, nil, "cash", decimal.Zero, "")
		assert.Error(t, err, "no lines")

		_, err = NewInvoiceReturn(ownerID, "RET-2608280003", invoiceID,
			[]ReturnLineInput{{ProductID: productID, Quantity: -1, Price: decimal.NewFromInt(5)}},
			"cash", decimal.Zero, "")
		assert.Error(t, err, "negative quantity")

		_, err = NewInvoiceReturn(ownerID, "RET-2608280003", invoiceID, lines, "", decimal.Zero, "")
		assert.Error(t, err, "empty refund method")

		_, err = NewInvoiceReturn(ownerID, "RET-2608280003", invoiceID, lines, "cash", decimal.NewFromInt(-5), "")
		assert.Error(t, err, "negative refund")
	})
}

func TestInvoiceReturn_QuantityForProduct(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()

	ret, err := NewInvoiceReturn(ownerID, "RET-2608280010", uuid.New(),
		[]ReturnLineInput{
			{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(10)},
			{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(10)},
			{ProductID: uuid.New(), Quantity: 4, Price: decimal.NewFromInt(3)},
		},
		"cash", decimal.NewFromInt(42), "")
	require.NoError(t, err)

	assert.Equal(t, int64(3), ret.QuantityForProduct(productID))
	assert.Equal(t, int64(0), ret.QuantityForProduct(uuid.New()))
}
