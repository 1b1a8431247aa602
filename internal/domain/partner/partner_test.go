package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with zero balance", func(t *testing.T) {
		c, err := NewCustomer(uuid.New(), "Aye Chan", "0955512345", "", "")
		require.NoError(t, err)
		assert.True(t, c.Balance.IsZero())
	})

	t.Run("requires name and phone", func(t *testing.T) {
		_, err := NewCustomer(uuid.New(), "", "0955512345", "", "")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = NewCustomer(uuid.New(), "Aye Chan", "", "", "")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCustomer_ApplyBalanceDelta(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Aye Chan", "0955512345", "", "")
	require.NoError(t, err)

	c.ApplyBalanceDelta(decimal.NewFromInt(100))
	c.ApplyBalanceDelta(decimal.NewFromInt(-30))
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(70)))

	// balances are signed; going negative is legal
	c.ApplyBalanceDelta(decimal.NewFromInt(-100))
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(-30)))
}

func TestNewSupplier(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "Golden Valley Trading", "0966612345", "gv@example.com", "Mandalay")
	require.NoError(t, err)
	assert.Equal(t, "Golden Valley Trading", s.Name)
	assert.True(t, s.Balance.IsZero())

	_, err = NewSupplier(uuid.New(), "Golden Valley Trading", "", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSupplier_ApplyBalanceDelta(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "Golden Valley Trading", "0966612345", "", "")
	require.NoError(t, err)

	s.ApplyBalanceDelta(decimal.NewFromInt(250))
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(250)))
}
