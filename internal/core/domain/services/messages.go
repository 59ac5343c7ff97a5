package services

import (
	"fmt"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// SubmittedMessage is sent to the customer once the order is persisted.
func SubmittedMessage(code kernel.OrderCode) string {
	return fmt.Sprintf("Order %s was created. We will let you know when it is ready.", code)
}

// StatusMessage returns the text announcing that an order entered status.
// Pending has no message and reports false. reason is only used for
// Cancelled and is omitted when blank.
func StatusMessage(status order.Status, code kernel.OrderCode, reason string) (string, bool) {
	switch status {
	case order.InPreparation:
		return fmt.Sprintf("Order %s is being prepared.", code), true
	case order.Ready:
		return fmt.Sprintf("Order %s is ready for pickup.", code), true
	case order.Delivered:
		return fmt.Sprintf("Order %s was delivered. Thank you for your purchase!", code), true
	case order.Cancelled:
		msg := fmt.Sprintf("Order %s was cancelled.", code)
		if reason = strings.TrimSpace(reason); reason != "" {
			msg += " Reason: " + reason
		}
		return msg, true
	default:
		return "", false
	}
}
