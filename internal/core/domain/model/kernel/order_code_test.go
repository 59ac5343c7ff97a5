package kernel_test

import (
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderCode(t *testing.T) {
	t.Run("should accept three letters followed by three digits", func(t *testing.T) {
		for _, s := range []string{"ABC123", "ZZZ000", "QTX042"} {
			code, err := kernel.NewOrderCode(s)

			require.NoError(t, err, s)
			assert.Equal(t, s, code.String())
		}
	})

	t.Run("should reject malformed codes", func(t *testing.T) {
		for _, s := range []string{"abc123", "AB1234", "ABCD12", "ABC12", "ABC1234", "123ABC", "ÁBC123"} {
			_, err := kernel.NewOrderCode(s)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.NewOrderCode("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrderCode_IsEqual(t *testing.T) {
	a, _ := kernel.NewOrderCode("ABC123")
	b, _ := kernel.NewOrderCode("ABC123")
	c, _ := kernel.NewOrderCode("ABC124")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestIDs_Validate(t *testing.T) {
	require.NoError(t, kernel.CustomerID(1).Validate())
	require.NoError(t, kernel.ProductID(42).Validate())

	require.ErrorIs(t, kernel.CustomerID(0).Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, kernel.ProductID(-3).Validate(), errs.ErrValueIsInvalid)
}
