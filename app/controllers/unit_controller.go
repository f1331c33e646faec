package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// UnitController covers unit CRUD and status patches.
type UnitController struct {
	repos *repository.Repositories
}

func NewUnitController(repos *repository.Repositories) *UnitController {
	return &UnitController{repos: repos}
}

func (uc *UnitController) HandleList(c *fiber.Ctx) error {
	if raw := c.Query("property_id"); raw != "" {
		propertyID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid property_id")
		}
		units, err := uc.repos.Unit.GetByProperty(uint(propertyID))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load units")
		}
		return c.JSON(fiber.Map{"success": true, "data": units, "total": len(units)})
	}

	offset, limit := parsePagination(c)
	units, err := uc.repos.Unit.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load units")
	}
	return c.JSON(fiber.Map{"success": true, "data": units})
}

func (uc *UnitController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid unit id")
	}

	unit, err := uc.repos.Unit.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Unit not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load unit")
	}
	return c.JSON(fiber.Map{"success": true, "data": unit})
}

func (uc *UnitController) HandleCreate(c *fiber.Ctx) error {
	var unit models.Unit
	if err := c.BodyParser(&unit); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	unit.ID = 0
	if unit.Type == "" {
		unit.Type = models.UNIT_TYPE_RESIDENTIAL
	}
	if unit.Status == "" {
		unit.Status = models.UNIT_STATUS_VACANT
	}

	if err := unit.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := uc.repos.Unit.Create(&unit); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create unit")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": unit})
}

func (uc *UnitController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid unit id")
	}

	unit, err := uc.repos.Unit.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Unit not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load unit")
	}

	if err := c.BodyParser(unit); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	unit.ID = id

	if err := unit.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := uc.repos.Unit.Update(unit); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update unit")
	}
	return c.JSON(fiber.Map{"success": true, "data": unit})
}

type unitStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus patches only the occupancy/payment status and records
// the change in the audit trail.
func (uc *UnitController) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid unit id")
	}

	var req unitStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	switch req.Status {
	case models.UNIT_STATUS_PAID, models.UNIT_STATUS_OVERDUE, models.UNIT_STATUS_PARTIAL, models.UNIT_STATUS_VACANT:
	default:
		return jsonError(c, fiber.StatusBadRequest, "status must be paid, overdue, partial or vacant")
	}

	if _, err := uc.repos.Unit.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Unit not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load unit")
	}
	if err := uc.repos.Unit.UpdateStatus(id, req.Status); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update unit status")
	}

	entityID := id
	_ = uc.repos.Audit.Create(&models.AuditLog{
		Action:      "unit_status_updated",
		Actor:       "admin-api",
		Description: "Unit status set to " + req.Status,
		EntityType:  models.ENTITY_UNIT,
		EntityID:    &entityID,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Unit status updated"})
}
