package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// PaymentController exposes the reconciled payment records read-only; the
// IPN pipeline is the only writer.
type PaymentController struct {
	repos *repository.Repositories
}

func NewPaymentController(repos *repository.Repositories) *PaymentController {
	return &PaymentController{repos: repos}
}

func (pc *PaymentController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	if raw := c.Query("property_id"); raw != "" {
		propertyID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid property_id")
		}
		payments, err := pc.repos.Payment.GetByProperty(uint(propertyID), offset, limit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
		}
		return c.JSON(fiber.Map{"success": true, "data": payments})
	}
	if raw := c.Query("tenant_id"); raw != "" {
		tenantID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid tenant_id")
		}
		payments, err := pc.repos.Payment.GetByTenant(uint(tenantID), offset, limit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
		}
		return c.JSON(fiber.Map{"success": true, "data": payments})
	}

	payments, err := pc.repos.Payment.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
	}
	total, err := pc.repos.Payment.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}
	return c.JSON(fiber.Map{"success": true, "data": payments, "total": total})
}

func (pc *PaymentController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	payment, err := pc.repos.Payment.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load payment")
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// HandleVerifyByReference answers whether a gateway reference has been
// reconciled into a payment yet.
func (pc *PaymentController) HandleVerifyByReference(c *fiber.Ctx) error {
	reference := strings.TrimSpace(c.Query("reference"))
	if reference == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing reference")
	}

	payment, err := pc.repos.Payment.GetByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"success": true, "found": false})
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to verify payment")
	}
	return c.JSON(fiber.Map{"success": true, "found": true, "data": payment})
}
