package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// PropertyController covers property CRUD for the dashboard.
type PropertyController struct {
	repos *repository.Repositories
}

func NewPropertyController(repos *repository.Repositories) *PropertyController {
	return &PropertyController{repos: repos}
}

func (pc *PropertyController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	properties, err := pc.repos.Property.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load properties")
	}
	total, err := pc.repos.Property.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to count properties")
	}

	return c.JSON(fiber.Map{"success": true, "data": properties, "total": total})
}

func (pc *PropertyController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid property id")
	}

	property, err := pc.repos.Property.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}
	return c.JSON(fiber.Map{"success": true, "data": property})
}

func (pc *PropertyController) HandleCreate(c *fiber.Ctx) error {
	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	property.ID = 0

	if err := property.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := pc.repos.Property.Create(&property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create property")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": property})
}

func (pc *PropertyController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid property id")
	}

	property, err := pc.repos.Property.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}

	if err := c.BodyParser(property); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	property.ID = id

	if err := property.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := pc.repos.Property.Update(property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update property")
	}
	return c.JSON(fiber.Map{"success": true, "data": property})
}

func (pc *PropertyController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid property id")
	}

	if err := pc.repos.Property.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete property")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Property deleted"})
}
