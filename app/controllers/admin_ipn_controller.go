package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/ipn"
	"gorm.io/gorm"
)

// AdminIPNController is the administrative surface over the pipeline:
// ledger browsing, config management, retry triggering and test scenarios.
type AdminIPNController struct {
	repos   *repository.Repositories
	service *ipn.Service
	runner  *ipn.ScenarioRunner
}

// NewAdminIPNController creates the admin controller.
func NewAdminIPNController(repos *repository.Repositories, service *ipn.Service, runner *ipn.ScenarioRunner) *AdminIPNController {
	return &AdminIPNController{repos: repos, service: service, runner: runner}
}

// HandleListLogs returns ledger entries, most recent first, optionally
// filtered by status.
func (ac *AdminIPNController) HandleListLogs(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	status := c.Query("status")

	logs, err := ac.repos.IPNLog.List(status, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load IPN logs")
	}
	total, err := ac.repos.IPNLog.Count(status)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to count IPN logs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
		"total":   total,
	})
}

// HandleGetLog returns a single ledger entry.
func (ac *AdminIPNController) HandleGetLog(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid log id")
	}

	entry, err := ac.repos.IPNLog.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "IPN log not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load IPN log")
	}
	return c.JSON(fiber.Map{"success": true, "data": entry})
}

// HandleRetryLog re-queues a failed ledger entry for redelivery.
func (ac *AdminIPNController) HandleRetryLog(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid log id")
	}

	if err := ac.service.Retry(id); err != nil {
		switch {
		case errors.Is(err, ipn.ErrLogNotFound):
			return jsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, ipn.ErrNotRetryable):
			return jsonError(c, fiber.StatusConflict, err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "Failed to retry IPN log")
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "Retry initiated"})
}

// HandleGetConfig returns the latest webhook configuration.
func (ac *AdminIPNController) HandleGetConfig(c *fiber.Ctx) error {
	config, err := ac.repos.IPNConfig.GetLatest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "No IPN configuration exists yet")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load IPN configuration")
	}
	return c.JSON(fiber.Map{"success": true, "data": config})
}

type configUpdateRequest struct {
	WebhookURL        *string `json:"webhook_url"`
	WebhookSecret     *string `json:"webhook_secret"`
	IsActive          *bool   `json:"is_active"`
	RequireSignature  *bool   `json:"require_signature"`
	AccumulatePartial *bool   `json:"accumulate_partial"`
	RetryAttempts     *int    `json:"retry_attempts"`
	RetryDelaySeconds *int    `json:"retry_delay_seconds"`
	TimeoutSeconds    *int    `json:"timeout_seconds"`
}

// HandleUpdateConfig patches the webhook configuration, creating the first
// row when none exists.
func (ac *AdminIPNController) HandleUpdateConfig(c *fiber.Ctx) error {
	var req configUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	config, err := ac.repos.IPNConfig.GetLatest()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load IPN configuration")
		}
		config = &models.IPNConfig{
			RetryAttempts:     3,
			RetryDelaySeconds: 60,
			TimeoutSeconds:    30,
		}
	}

	if req.WebhookURL != nil {
		config.WebhookURL = *req.WebhookURL
	}
	if req.WebhookSecret != nil {
		config.WebhookSecret = *req.WebhookSecret
	}
	if req.IsActive != nil {
		config.IsActive = *req.IsActive
	}
	if req.RequireSignature != nil {
		config.RequireSignature = *req.RequireSignature
	}
	if req.AccumulatePartial != nil {
		config.AccumulatePartial = *req.AccumulatePartial
	}
	if req.RetryAttempts != nil {
		config.RetryAttempts = *req.RetryAttempts
	}
	if req.RetryDelaySeconds != nil {
		config.RetryDelaySeconds = *req.RetryDelaySeconds
	}
	if req.TimeoutSeconds != nil {
		config.TimeoutSeconds = *req.TimeoutSeconds
	}

	if err := config.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ac.repos.IPNConfig.Save(config); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to save IPN configuration")
	}
	return c.JSON(fiber.Map{"success": true, "data": config})
}

// HandleListStatistics returns the recent daily rollups.
func (ac *AdminIPNController) HandleListStatistics(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "30"))
	if limit < 1 || limit > 365 {
		limit = 30
	}

	stats, err := ac.repos.IPNStatistic.ListRecent(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load IPN statistics")
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// HandleListScenarios returns the predefined test scenarios.
func (ac *AdminIPNController) HandleListScenarios(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": ipn.Scenarios()})
}

// HandleRunScenario drives one scenario through the live pipeline.
func (ac *AdminIPNController) HandleRunScenario(c *fiber.Ctx) error {
	result, err := ac.runner.Run(c.Params("id"))
	if err != nil {
		if result == nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		// Run finished but recording the test log failed.
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// HandleListTestLogs returns recent scenario runs.
func (ac *AdminIPNController) HandleListTestLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := ac.repos.IPNTestLog.ListRecent(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load test logs")
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}
