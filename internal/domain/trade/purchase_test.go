package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	ownerID := uuid.New()
	supplierID := uuid.New()
	productID := uuid.New()

	line := PurchaseLineInput{
		ProductID:      productID,
		Quantity:       10,
		UnitPrice:      decimal.NewFromInt(8),
		RetailPrice:    decimal.NewFromInt(12),
		WholesalePrice: decimal.NewFromInt(10),
	}

	t.Run("computes totals and balance due", func(t *testing.T) {
		p, err := NewPurchase(ownerID, "PUR-2608280001", supplierID, time.Time{},
			[]PurchaseLineInput{line}, nil, "credit", decimal.NewFromInt(50), "")

		require.NoError(t, err)
		assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(80)))
		assert.True(t, p.Total.Equal(decimal.NewFromInt(80)))
		assert.True(t, p.BalanceDue.Equal(decimal.NewFromInt(30)), p.BalanceDue.String())
		assert.Equal(t, PurchaseStatusPending, p.Status)
		assert.False(t, p.Date.IsZero())
	})

	t.Run("completed when paid in full", func(t *testing.T) {
		p, err := NewPurchase(ownerID, "PUR-2608280002", supplierID, time.Time{},
			[]PurchaseLineInput{line}, nil, "cash", decimal.NewFromInt(80), "")

		require.NoError(t, err)
		assert.Equal(t, PurchaseStatusCompleted, p.Status)
		assert.True(t, p.BalanceDue.IsZero())
	})

	t.Run("taxes raise the total and the balance", func(t *testing.T) {
		p, err := NewPurchase(ownerID, "PUR-2608280003", supplierID, time.Time{},
			[]PurchaseLineInput{line},
			[]TaxChargeInput{{TaxID: uuid.New(), Name: "VAT", Rate: decimal.NewFromInt(10)}},
			"credit", decimal.Zero, "")

		require.NoError(t, err)
		assert.True(t, p.TaxTotal().Equal(decimal.NewFromInt(8)))
		assert.True(t, p.Total.Equal(decimal.NewFromInt(88)))
		assert.True(t, p.BalanceDue.Equal(decimal.NewFromInt(88)))
	})

	t.Run("keeps the supplied receipt date", func(t *testing.T) {
		date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		p, err := NewPurchase(ownerID, "PUR-2608280004", supplierID, date,
			[]PurchaseLineInput{line}, nil, "cash", decimal.NewFromInt(80), "")

		require.NoError(t, err)
		assert.Equal(t, date, p.Date)
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := NewPurchase(ownerID, "", supplierID, time.Time{},
			[]PurchaseLineInput{line}, nil, "cash", decimal.Zero, "")
		assert.Error(t, err, "empty number")

		_, err = NewPurchase(ownerID, "PUR-2608280005", uuid.Nil, time.Time{},
			[]PurchaseLineInput{line}, nil, "cash", decimal.Zero, "")
		assert.Error(t, err, "missing supplier")

		_, err = NewPurchase(ownerID, "PUR-2608280005", supplierID, time.Time{},
			nil, nil, "cash", decimal.Zero, "")
		assert.Error(t, err, "no lines")

		bad := line
		bad.Quantity = 0
		_, err = NewPurchase(ownerID, "PUR-2608280005", supplierID, time.Time{},
			[]PurchaseLineInput{bad}, nil, "cash", decimal.Zero, "")
		assert.Error(t, err, "zero quantity")

		_, err = NewPurchase(ownerID, "PUR-2608280005", supplierID, time.Time{},
			[]PurchaseLineInput{line}, nil, "cash", decimal.NewFromInt(-1), "")
		assert.Error(t, err, "negative payment")
	})
}
