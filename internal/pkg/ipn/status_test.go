package ipn

import (
	"testing"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/stretchr/testify/assert"
)

func TestDecodeGatewayStatus(t *testing.T) {
	tests := []struct {
		token string
		want  GatewayStatus
	}{
		{token: "SUCCESS", want: GatewayStatusSuccess},
		{token: "PARTIAL", want: GatewayStatusPartial},
		{token: "", want: GatewayStatusUnknown},
		{token: "FAILED", want: GatewayStatusFailed},
		{token: "success", want: GatewayStatusFailed},
		{token: "COMPLETED", want: GatewayStatusFailed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeGatewayStatus(tt.token), "token %q", tt.token)
	}
}

func TestGatewayStatusPaymentStatus(t *testing.T) {
	assert.Equal(t, models.PAYMENT_STATUS_PAID, GatewayStatusSuccess.PaymentStatus())
	assert.Equal(t, models.PAYMENT_STATUS_PARTIAL, GatewayStatusPartial.PaymentStatus())
	assert.Equal(t, models.PAYMENT_STATUS_FAILED, GatewayStatusFailed.PaymentStatus())
	// An absent token lands on failed as well.
	assert.Equal(t, models.PAYMENT_STATUS_FAILED, GatewayStatusUnknown.PaymentStatus())
}
