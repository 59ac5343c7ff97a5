package services_test

import (
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	code, _ := kernel.NewOrderCode("ABC123")

	assert.Equal(t, "Order ABC123 was created. We will let you know when it is ready.",
		services.SubmittedMessage(code))

	tests := []struct {
		status order.Status
		reason string
		want   string
		ok     bool
	}{
		{order.Pending, "", "", false},
		{order.InPreparation, "", "Order ABC123 is being prepared.", true},
		{order.Ready, "", "Order ABC123 is ready for pickup.", true},
		{order.Delivered, "", "Order ABC123 was delivered. Thank you for your purchase!", true},
		{order.Cancelled, "", "Order ABC123 was cancelled.", true},
		{order.Cancelled, "   ", "Order ABC123 was cancelled.", true},
		{order.Cancelled, "  out of bread ", "Order ABC123 was cancelled. Reason: out of bread", true},
		{order.Unknown, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String()+"/"+tt.reason, func(t *testing.T) {
			got, ok := services.StatusMessage(tt.status, code, tt.reason)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
