package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int64) *Product {
	t.Helper()
	p, err := NewProduct(uuid.New(), "Espresso Beans 1kg", "Coffee", "Roastery Co",
		decimal.NewFromInt(8), decimal.NewFromInt(15), decimal.NewFromInt(12), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid input", func(t *testing.T) {
		p := newTestProduct(t, 10)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, int64(10), p.Stock)
		assert.True(t, p.RetailPrice.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "", "Coffee", "Roastery Co",
			decimal.NewFromInt(8), decimal.NewFromInt(15), decimal.NewFromInt(12), 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Beans", "Coffee", "Roastery Co",
			decimal.NewFromInt(8), decimal.NewFromInt(15), decimal.NewFromInt(12), -1)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Beans", "Coffee", "Roastery Co",
			decimal.NewFromInt(-1), decimal.NewFromInt(15), decimal.NewFromInt(12), 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestProduct_Deduct(t *testing.T) {
	t.Run("deducts available stock", func(t *testing.T) {
		p := newTestProduct(t, 5)
		require.NoError(t, p.Deduct(3))
		assert.Equal(t, int64(2), p.Stock)
	})

	t.Run("fails when stock is insufficient", func(t *testing.T) {
		p := newTestProduct(t, 2)
		err := p.Deduct(3)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(2), p.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 2)
		assert.ErrorIs(t, p.Deduct(0), shared.ErrInvalidInput)
		assert.ErrorIs(t, p.Deduct(-1), shared.ErrInvalidInput)
	})
}

func TestProduct_Restock(t *testing.T) {
	t.Run("increments stock", func(t *testing.T) {
		p := newTestProduct(t, 2)
		require.NoError(t, p.Restock(5))
		assert.Equal(t, int64(7), p.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 2)
		assert.ErrorIs(t, p.Restock(0), shared.ErrInvalidInput)
	})
}

func TestProduct_UpdateDetails(t *testing.T) {
	p := newTestProduct(t, 4)

	require.NoError(t, p.UpdateDetails("House Blend 1kg", "Coffee", "Roastery Co"))
	assert.Equal(t, "House Blend 1kg", p.Name)
	// stock must survive generic edits untouched
	assert.Equal(t, int64(4), p.Stock)

	assert.ErrorIs(t, p.UpdateDetails("", "Coffee", "Roastery Co"), shared.ErrInvalidInput)
}

func TestTax_AmountOn(t *testing.T) {
	tax, err := NewTax(uuid.New(), "VAT", decimal.NewFromInt(10))
	require.NoError(t, err)

	amount := tax.AmountOn(decimal.NewFromInt(250))
	assert.True(t, amount.Equal(decimal.NewFromInt(25)), "got %s", amount)
}
