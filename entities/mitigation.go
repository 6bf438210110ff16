package entities

import "time"

// AdditionalMitigation is an append-only supplementary action attached to an
// existing risk by any user.
type AdditionalMitigation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RiskID         uint      `gorm:"index" json:"risk_id"`
	UserID         int64     `json:"user_id"`
	Username       string    `json:"username"`
	Mitigation     string    `json:"mitigation"`
	ExpectedResult string    `json:"expected_result"`
	CreatedAt      time.Time `json:"created_at"`
}
