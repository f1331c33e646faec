package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/ipn"
)

// SignatureHeader carries the gateway's HMAC digest of the request body.
const SignatureHeader = "X-Jenga-Signature"

// IPNController exposes the webhook endpoint over the pipeline service.
type IPNController struct {
	service *ipn.Service
}

// NewIPNController creates the webhook controller.
func NewIPNController(service *ipn.Service) *IPNController {
	return &IPNController{service: service}
}

// HandleIPN receives a gateway payment notification. The raw body is copied
// before anything touches the request so verification hashes the exact bytes
// the gateway signed.
func (ic *IPNController) HandleIPN(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	ipAddress := firstHeaderValue(c, "X-Forwarded-For", "X-Real-IP")
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	// Forwarded-for chains list the client first.
	if i := strings.IndexByte(ipAddress, ','); i >= 0 {
		ipAddress = strings.TrimSpace(ipAddress[:i])
	}
	userAgent := strings.TrimSpace(c.Get(fiber.HeaderUserAgent))
	if userAgent == "" {
		userAgent = "unknown"
	}

	result := ic.service.Process(ipn.Request{
		RawBody:    rawBody,
		Signature:  strings.TrimSpace(c.Get(SignatureHeader)),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		ReceivedAt: time.Now(),
	})

	body := fiber.Map{
		"success": result.Success,
		"message": result.Message,
	}
	if result.PaymentID != nil {
		body["paymentId"] = *result.PaymentID
	}
	return c.Status(result.HTTPStatus).JSON(body)
}
