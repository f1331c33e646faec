package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// TenantController covers tenant CRUD and KYC status patches.
type TenantController struct {
	repos *repository.Repositories
}

func NewTenantController(repos *repository.Repositories) *TenantController {
	return &TenantController{repos: repos}
}

func (tc *TenantController) HandleList(c *fiber.Ctx) error {
	if raw := c.Query("property_id"); raw != "" {
		propertyID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid property_id")
		}
		tenants, err := tc.repos.Tenant.GetByProperty(uint(propertyID))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load tenants")
		}
		return c.JSON(fiber.Map{"success": true, "data": tenants, "total": len(tenants)})
	}

	offset, limit := parsePagination(c)
	tenants, err := tc.repos.Tenant.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load tenants")
	}
	total, err := tc.repos.Tenant.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to count tenants")
	}
	return c.JSON(fiber.Map{"success": true, "data": tenants, "total": total})
}

func (tc *TenantController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	tenant, err := tc.repos.Tenant.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load tenant")
	}
	return c.JSON(fiber.Map{"success": true, "data": tenant})
}

func (tc *TenantController) HandleCreate(c *fiber.Ctx) error {
	var tenant models.Tenant
	if err := c.BodyParser(&tenant); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	tenant.ID = 0
	if tenant.KYCStatus == "" {
		tenant.KYCStatus = models.KYC_PENDING
	}

	if err := tenant.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := tc.repos.Tenant.Create(&tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create tenant")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": tenant})
}

func (tc *TenantController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	tenant, err := tc.repos.Tenant.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load tenant")
	}

	if err := c.BodyParser(tenant); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	tenant.ID = id

	if err := tenant.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := tc.repos.Tenant.Update(tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update tenant")
	}
	return c.JSON(fiber.Map{"success": true, "data": tenant})
}

type kycStatusRequest struct {
	KYCStatus string `json:"kyc_status"`
}

// HandleUpdateKYCStatus patches only the KYC verdict and records the change
// in the audit trail.
func (tc *TenantController) HandleUpdateKYCStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	var req kycStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	switch req.KYCStatus {
	case models.KYC_PENDING, models.KYC_VERIFIED, models.KYC_REJECTED:
	default:
		return jsonError(c, fiber.StatusBadRequest, "kyc_status must be pending, verified or rejected")
	}

	if _, err := tc.repos.Tenant.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load tenant")
	}
	if err := tc.repos.Tenant.UpdateKYCStatus(id, req.KYCStatus); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update KYC status")
	}

	entityID := id
	_ = tc.repos.Audit.Create(&models.AuditLog{
		Action:      "kyc_status_updated",
		Actor:       "admin-api",
		Description: "KYC status set to " + req.KYCStatus,
		EntityType:  models.ENTITY_TENANT,
		EntityID:    &entityID,
	})

	return c.JSON(fiber.Map{"success": true, "message": "KYC status updated"})
}

func (tc *TenantController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	if err := tc.repos.Tenant.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete tenant")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Tenant deleted"})
}
