package ipn

import (
	"encoding/json"
	"strings"
	"time"
)

// UnknownReference is stored when a notification carries no usable reference.
const UnknownReference = "unknown"

// Notification is the decoded gateway payload. All fields are optional on the
// wire; TransactionRefLegacy covers the snake_case spelling older gateway
// channels still send.
type Notification struct {
	TransactionRef       string  `json:"transactionRef"`
	TransactionRefLegacy string  `json:"transaction_ref"`
	Amount               float64 `json:"amount"`
	ExpectedAmount       float64 `json:"expectedAmount"`
	Currency             string  `json:"currency"`
	Status               string  `json:"status"`
	PaymentMethod        string  `json:"paymentMethod"`
	PhoneNumber          string  `json:"phoneNumber"`
	Timestamp            string  `json:"timestamp"`
	ErrorCode            string  `json:"errorCode"`
	ErrorMessage         string  `json:"errorMessage"`
}

// ParseNotification decodes the raw webhook body. A decode failure means
// there is nothing meaningful to put in the ledger, the caller fails the
// whole request.
func ParseNotification(rawBody []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(rawBody, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Reference returns the correlation key: the camelCase field, then the legacy
// snake_case spelling, then the literal "unknown".
func (n *Notification) Reference() string {
	if ref := strings.TrimSpace(n.TransactionRef); ref != "" {
		return ref
	}
	if ref := strings.TrimSpace(n.TransactionRefLegacy); ref != "" {
		return ref
	}
	return UnknownReference
}

// GatewayStatus decodes the raw status token once.
func (n *Notification) GatewayStatus() GatewayStatus {
	return DecodeGatewayStatus(strings.TrimSpace(n.Status))
}

// PaymentDate returns the payload timestamp, or now when absent or
// unparseable.
func (n *Notification) PaymentDate(now time.Time) time.Time {
	ts := strings.TrimSpace(n.Timestamp)
	if ts == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t
	}
	return now
}

// Method returns the payment method, defaulting to the gateway's canonical
// name when absent.
func (n *Notification) Method(fallback string) string {
	if m := strings.TrimSpace(n.PaymentMethod); m != "" {
		return m
	}
	return fallback
}
