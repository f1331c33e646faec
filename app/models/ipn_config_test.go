package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPNConfigValidate(t *testing.T) {
	cfg := &IPNConfig{
		WebhookURL:        "https://gateway.example.com/ipn",
		WebhookSecret:     "secret",
		RetryAttempts:     3,
		RetryDelaySeconds: 60,
		TimeoutSeconds:    30,
	}
	assert.NoError(t, cfg.Validate())

	cfg.WebhookURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.WebhookURL = ""
	assert.NoError(t, cfg.Validate(), "webhook url is optional")

	cfg.RetryAttempts = 11
	assert.Error(t, cfg.Validate())
}

func TestIPNLogIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: IPN_STATUS_RECEIVED, want: false},
		{status: IPN_STATUS_PROCESSING, want: false},
		{status: IPN_STATUS_RETRY, want: false},
		{status: IPN_STATUS_SUCCESS, want: true},
		{status: IPN_STATUS_FAILED, want: true},
	}

	for _, tt := range tests {
		l := &IPNLog{Status: tt.status}
		assert.Equal(t, tt.want, l.IsTerminal(), "status %q", tt.status)
	}
}
