package models

import "time"

// IPNTestLog records the outcome of a predefined test scenario run through
// the live pipeline from the admin surface.
type IPNTestLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TestType       string    `gorm:"type:varchar(100);not null" json:"test_type"`
	TestPayload    string    `gorm:"type:text;not null" json:"test_payload"`
	ExpectedResult string    `gorm:"type:varchar(20)" json:"expected_result"`
	ActualResult   string    `gorm:"type:varchar(20)" json:"actual_result"`
	Passed         *bool     `gorm:"default:null" json:"passed"`
	ErrorMessage   string    `gorm:"type:text" json:"error_message"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
