package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
)

// AuditController exposes the audit trail.
type AuditController struct {
	repos *repository.Repositories
}

func NewAuditController(repos *repository.Repositories) *AuditController {
	return &AuditController{repos: repos}
}

func (ac *AuditController) HandleList(c *fiber.Ctx) error {
	entityType := c.Query("entity_type")
	if entityType != "" {
		entityID, err := strconv.ParseUint(c.Query("entity_id", "0"), 10, 32)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid entity_id")
		}
		entries, err := ac.repos.Audit.GetByEntity(entityType, uint(entityID))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load audit log")
		}
		return c.JSON(fiber.Map{"success": true, "data": entries})
	}

	offset, limit := parsePagination(c)
	entries, err := ac.repos.Audit.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load audit log")
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}

func (ac *AuditController) HandleCreate(c *fiber.Ctx) error {
	var entry models.AuditLog
	if err := c.BodyParser(&entry); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	entry.ID = 0
	if entry.Action == "" || entry.Actor == "" || entry.EntityType == "" {
		return jsonError(c, fiber.StatusBadRequest, "action, actor and entity_type are required")
	}

	if err := ac.repos.Audit.Create(&entry); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create audit entry")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": entry})
}
