package kernel

import (
	"fmt"
	"regexp"

	"cafeteria/internal/pkg/errs"
)

// OrderCodeLength is the number of characters in an order code.
const OrderCodeLength = 6

var orderCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// OrderCode is the human-readable order reference shown to customers and
// staff: three uppercase letters followed by three digits, e.g. "QTX042".
type OrderCode struct {
	value string
}

// NewOrderCode validates s against the code format. Lowercase input is
// rejected; callers normalise user input before searching.
func NewOrderCode(s string) (OrderCode, error) {
	code := OrderCode{value: s}
	if err := code.Validate(); err != nil {
		return OrderCode{}, err
	}
	return code, nil
}

// Validate checks the code format.
func (c OrderCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	if !orderCodePattern.MatchString(c.value) {
		return errs.NewValueIsInvalidErrorWithCause("order code", fmt.Errorf("%q does not match %s", c.value, orderCodePattern))
	}
	return nil
}

func (c OrderCode) String() string {
	return c.value
}

// IsEqual reports whether both codes are identical.
func (c OrderCode) IsEqual(other OrderCode) bool {
	return c.value == other.value
}
