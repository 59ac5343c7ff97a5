package kernel_test

import (
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		for _, amount := range []string{"0", "0.01", "5", "1234.5678"} {
			m, err := kernel.NewMoney(decimal.RequireFromString(amount))

			require.NoError(t, err, amount)
			assert.True(t, m.Amount().Equal(decimal.RequireFromString(amount)))
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-1 is negative")
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse decimal literals", func(t *testing.T) {
		m, err := kernel.MoneyFromString("3.50")

		require.NoError(t, err)
		assert.Equal(t, "3.50", m.String())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("three")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	five, err := kernel.MoneyFromFloat(5.0)
	require.NoError(t, err)
	three, err := kernel.MoneyFromFloat(3.0)
	require.NoError(t, err)
	thirteen, err := kernel.MoneyFromString("13.00")
	require.NoError(t, err)

	t.Run("should multiply and add exactly", func(t *testing.T) {
		total := five.Mul(2).Add(three.Mul(1))

		assert.True(t, total.IsEqual(thirteen))
		assert.Equal(t, "13.00", total.String())
	})

	t.Run("should not accumulate float error", func(t *testing.T) {
		tenCents, err := kernel.MoneyFromString("0.10")
		require.NoError(t, err)

		var sum kernel.Money
		for range 10 {
			sum = sum.Add(tenCents)
		}

		assert.Equal(t, "1.00", sum.String())
	})

	t.Run("zero value should be zero", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}
