package models

import "time"

// OTP flows. The flow tags which business operation created the attempt and
// decides what happens to the user record when the attempt is verified.
const (
	FlowRegistration = "Registration"
	FlowMigration    = "Migration"
	FlowChangeEmail  = "ChangeEmail"
)

// Verification channels.
const (
	TargetEmail  = "EMAIL"
	TargetMobile = "MOBILE"
)

// OTPAttempt — отдельная запись на каждую отправку кода. Записи никогда не
// удаляются; повторная отправка создаёт новую строку, старые живут до TTL.
type OTPAttempt struct {
	ID     int64  `json:"id"`
	UserID *int   `json:"user_id,omitempty"`
	Flow   string `json:"flow"`

	TargetType  string `json:"target_type"`  // EMAIL | MOBILE
	TargetValue string `json:"target_value"` // destination at time of issuance

	// Phone parts carried separately for MOBILE change targets so the commit
	// step does not have to re-derive them from TargetValue.
	TargetPhoneCode   string `json:"target_phone_code,omitempty"`
	TargetPhoneNumber string `json:"target_phone_number,omitempty"`

	OTPCode      string    `json:"-"`
	CreationTime time.Time `json:"creation_time"`
	IsVerified   bool      `json:"is_verified"`
	AttemptCount int       `json:"attempt_count"`
}
