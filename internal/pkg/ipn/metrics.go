package ipn

import "github.com/VictoriaMetrics/metrics"

var (
	requestsSuccessCounter       = metrics.GetOrCreateCounter(`ipn_requests_total{result="success"}`)
	requestsFailedCounter        = metrics.GetOrCreateCounter(`ipn_requests_total{result="failed"}`)
	requestsRejectedCounter      = metrics.GetOrCreateCounter(`ipn_requests_total{result="rejected"}`)
	requestsNotConfiguredCounter = metrics.GetOrCreateCounter(`ipn_requests_total{result="not_configured"}`)
	requestsMalformedCounter     = metrics.GetOrCreateCounter(`ipn_requests_total{result="malformed"}`)

	retriesCounter = metrics.GetOrCreateCounter(`ipn_retries_total`)

	requestDurationHistogram = metrics.GetOrCreateHistogram(`ipn_request_duration_milliseconds`)
)
