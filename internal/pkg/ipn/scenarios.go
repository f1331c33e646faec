package ipn

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
)

// Scenario is a predefined synthetic delivery the admin surface can drive
// through the live pipeline.
type Scenario struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ExpectedStatus string `json:"expected_status"`
	// deliveries returns the payloads to post, in order. The duplicate
	// scenario posts the same reference twice.
	deliveries func() []Notification
}

// ScenarioResult reports a single run.
type ScenarioResult struct {
	ScenarioID string `json:"scenario_id"`
	Passed     bool   `json:"passed"`
	Actual     string `json:"actual_status"`
	Message    string `json:"message"`
}

// Scenarios returns the predefined test set: successful, failed and partial
// payments plus the duplicate-reference case.
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:             "success",
			Name:           "Successful Payment",
			Description:    "Test a successful payment notification",
			ExpectedStatus: models.IPN_STATUS_SUCCESS,
			deliveries: func() []Notification {
				return []Notification{{
					TransactionRef: "TEST-" + uuid.NewString(),
					Amount:         5000,
					Currency:       "KES",
					Status:         "SUCCESS",
					PaymentMethod:  "M-PESA",
					PhoneNumber:    "254712345678",
					Timestamp:      time.Now().Format(time.RFC3339),
				}}
			},
		},
		{
			ID:             "failed",
			Name:           "Failed Payment",
			Description:    "Test a failed payment notification",
			ExpectedStatus: models.IPN_STATUS_SUCCESS,
			deliveries: func() []Notification {
				return []Notification{{
					TransactionRef: "TEST-FAIL-" + uuid.NewString(),
					Amount:         5000,
					Currency:       "KES",
					Status:         "FAILED",
					ErrorCode:      "INSUFFICIENT_FUNDS",
					ErrorMessage:   "Insufficient funds in account",
					Timestamp:      time.Now().Format(time.RFC3339),
				}}
			},
		},
		{
			ID:             "partial",
			Name:           "Partial Payment",
			Description:    "Test a partial payment notification",
			ExpectedStatus: models.IPN_STATUS_SUCCESS,
			deliveries: func() []Notification {
				return []Notification{{
					TransactionRef: "TEST-PARTIAL-" + uuid.NewString(),
					Amount:         3000,
					ExpectedAmount: 5000,
					Currency:       "KES",
					Status:         "PARTIAL",
					PaymentMethod:  "M-PESA",
					PhoneNumber:    "254712345678",
					Timestamp:      time.Now().Format(time.RFC3339),
				}}
			},
		},
		{
			ID:             "duplicate",
			Name:           "Duplicate Transaction",
			Description:    "Test that a repeated reference updates the same payment instead of creating a second record",
			ExpectedStatus: models.IPN_STATUS_SUCCESS,
			deliveries: func() []Notification {
				ref := "TEST-DUP-" + uuid.NewString()
				n := Notification{
					TransactionRef: ref,
					Amount:         5000,
					Currency:       "KES",
					Status:         "SUCCESS",
					PaymentMethod:  "M-PESA",
					PhoneNumber:    "254712345678",
					Timestamp:      time.Now().Format(time.RFC3339),
				}
				return []Notification{n, n}
			},
		},
	}
}

// FindScenario looks a scenario up by id.
func FindScenario(id string) (Scenario, bool) {
	for _, sc := range Scenarios() {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}

// ScenarioRunner drives scenarios through the pipeline service and records
// each run in the test log.
type ScenarioRunner struct {
	service  *Service
	configs  repository.IPNConfigRepository
	testLogs repository.IPNTestLogRepository
}

// NewScenarioRunner wires a runner over the live pipeline.
func NewScenarioRunner(service *Service, configs repository.IPNConfigRepository, testLogs repository.IPNTestLogRepository) *ScenarioRunner {
	return &ScenarioRunner{service: service, configs: configs, testLogs: testLogs}
}

// Run executes a scenario against the live pipeline, signing each synthetic
// delivery with the active webhook secret.
func (r *ScenarioRunner) Run(scenarioID string) (*ScenarioResult, error) {
	scenario, ok := FindScenario(scenarioID)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", scenarioID)
	}

	config, err := r.configs.GetActive()
	if err != nil {
		return nil, errors.New("cannot run scenarios without an active IPN configuration")
	}

	deliveries := scenario.deliveries()
	var lastResult Result
	var lastPayload []byte
	var paymentIDs []uint
	for _, delivery := range deliveries {
		payload, err := json.Marshal(delivery)
		if err != nil {
			return nil, err
		}
		lastPayload = payload

		req := Request{
			RawBody:   payload,
			IPAddress: "127.0.0.1",
			UserAgent: "rentpulse-scenario-runner",
		}
		if config.WebhookSecret != "" {
			req.Signature = Sign(payload, config.WebhookSecret)
		}
		lastResult = r.service.Process(req)
		if lastResult.PaymentID != nil {
			paymentIDs = append(paymentIDs, *lastResult.PaymentID)
		}
	}

	actual := models.IPN_STATUS_FAILED
	if lastResult.Success {
		actual = models.IPN_STATUS_SUCCESS
	}

	passed := actual == scenario.ExpectedStatus
	message := lastResult.Message
	// The duplicate scenario additionally requires both deliveries to land on
	// the same payment record.
	if scenario.ID == "duplicate" && passed {
		if len(paymentIDs) != 2 || paymentIDs[0] != paymentIDs[1] {
			passed = false
			message = "duplicate deliveries resolved to different payment records"
		}
	}

	result := &ScenarioResult{
		ScenarioID: scenario.ID,
		Passed:     passed,
		Actual:     actual,
		Message:    message,
	}

	if r.testLogs != nil {
		passedCopy := passed
		entry := &models.IPNTestLog{
			TestType:       scenario.Name,
			TestPayload:    string(lastPayload),
			ExpectedResult: scenario.ExpectedStatus,
			ActualResult:   actual,
			Passed:         &passedCopy,
		}
		if !passed {
			entry.ErrorMessage = message
		}
		if err := r.testLogs.Create(entry); err != nil {
			return result, err
		}
	}

	return result, nil
}
