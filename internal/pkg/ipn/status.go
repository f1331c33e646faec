package ipn

import "github.com/nyumbani-labs/rentpulse/app/models"

// GatewayStatus is the closed set of status tokens the gateway can report.
// Raw payload strings are decoded exactly once at the boundary; everything
// downstream works with this type.
type GatewayStatus int

const (
	GatewayStatusUnknown GatewayStatus = iota
	GatewayStatusSuccess
	GatewayStatusPartial
	GatewayStatusFailed
)

// DecodeGatewayStatus maps a raw payload token onto the closed enumeration.
// Matching is exact: only the "SUCCESS" and "PARTIAL" tokens are recognized,
// an absent token decodes to Unknown and every other token to Failed.
func DecodeGatewayStatus(token string) GatewayStatus {
	switch token {
	case "SUCCESS":
		return GatewayStatusSuccess
	case "PARTIAL":
		return GatewayStatusPartial
	case "":
		return GatewayStatusUnknown
	default:
		return GatewayStatusFailed
	}
}

// PaymentStatus maps the gateway status onto the three-valued payment record
// status. Unknown falls back to failed, matching the gateway contract where
// anything but an explicit success token is treated as a failed payment.
func (s GatewayStatus) PaymentStatus() string {
	switch s {
	case GatewayStatusSuccess:
		return models.PAYMENT_STATUS_PAID
	case GatewayStatusPartial:
		return models.PAYMENT_STATUS_PARTIAL
	default:
		return models.PAYMENT_STATUS_FAILED
	}
}

func (s GatewayStatus) String() string {
	switch s {
	case GatewayStatusSuccess:
		return "SUCCESS"
	case GatewayStatusPartial:
		return "PARTIAL"
	case GatewayStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
