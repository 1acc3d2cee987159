package models

import "time"

// Request/response shapes for the onboarding API.

type RegisterUserRequest struct {
	ICNumber     string `json:"ic_number" binding:"required,len=12"`
	CustomerName string `json:"customer_name" binding:"required,max=200"`
	PhoneCode    string `json:"phone_code" binding:"required,max=5"`
	PhoneNumber  string `json:"phone_number" binding:"required,max=15"`
	EmailAddress string `json:"email_address" binding:"required,email,max=150"`
}

type UserResponse struct {
	UserID           int       `json:"user_id"`
	ICNumber         string    `json:"ic_number"`
	CustomerName     string    `json:"customer_name"`
	PhoneCode        string    `json:"phone_code"`
	PhoneNumber      string    `json:"phone_number"`
	EmailAddress     string    `json:"email_address"`
	BiometricEnabled bool      `json:"biometric_enabled"`
	RegistrationDate time.Time `json:"registration_date"`
}

type ICCheckResponse struct {
	Status  string `json:"status"` // NEW | IN_PROGRESS | EXISTS
	Message string `json:"message"`
	Action  string `json:"action"` // START | CONTINUE
	UserID  *int   `json:"user_id,omitempty"`
}

type SendOTPRequest struct {
	UserID           int    `json:"user_id" binding:"required"`
	VerificationType string `json:"verification_type" binding:"required,oneof=EMAIL MOBILE"`
}

type VerifyOTPRequest struct {
	AttemptID int64  `json:"attempt_id" binding:"required"`
	OTPCode   string `json:"otp_code" binding:"required,len=4"`
}

type OTPResponse struct {
	IsSuccess        bool   `json:"is_success"`
	Message          string `json:"message"`
	ObfuscatedTarget string `json:"obfuscated_target,omitempty"`
	AttemptID        *int64 `json:"attempt_id,omitempty"`
	// Raw code, populated only when security.debug_reveal_codes is on.
	DebugCode string `json:"debug_code,omitempty"`
}

type CreatePinRequest struct {
	Pin        string `json:"pin" binding:"required,len=6"`
	ConfirmPin string `json:"confirm_pin" binding:"required,len=6"`
}

type EnableBiometricRequest struct {
	Enable bool `json:"enable"`
}

type MigrationRequest struct {
	ICNumber string `json:"ic_number" binding:"required,len=12"`
}

type MigrationResponse struct {
	IsSuccess        bool   `json:"is_success"`
	Message          string `json:"message"`
	UserID           *int   `json:"user_id,omitempty"`
	ObfuscatedMobile string `json:"obfuscated_mobile,omitempty"`
	ObfuscatedEmail  string `json:"obfuscated_email,omitempty"`
	AttemptID        *int64 `json:"attempt_id,omitempty"`
}

type ChangeEmailRequest struct {
	UserID          int    `json:"user_id" binding:"required"`
	NewEmailAddress string `json:"new_email_address" binding:"required,email,max=150"`
}

type ChangeEmailResponse struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
	AttemptID *int64 `json:"attempt_id,omitempty"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
