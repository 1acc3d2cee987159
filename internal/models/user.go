package models

import "time"

type User struct {
	ID           int    `json:"id"`
	ICNumber     string `json:"ic_number"`
	CustomerName string `json:"customer_name"`
	PhoneCode    string `json:"phone_code"`
	PhoneNumber  string `json:"phone_number"`
	EmailAddress string `json:"email_address"`

	VerifiedEmail    bool `json:"verified_email"`
	VerifiedMobile   bool `json:"verified_mobile"`
	TermsAgreed      bool `json:"terms_agreed"`
	BiometricEnabled bool `json:"biometric_enabled"`

	RegistrationDate time.Time `json:"registration_date"`
	LastUpdated      time.Time `json:"last_updated"`
}

// FullyVerified — both contact channels confirmed.
func (u *User) FullyVerified() bool {
	return u.VerifiedEmail && u.VerifiedMobile
}

// Mobile returns the dialable number (phone code + national number).
func (u *User) Mobile() string {
	return u.PhoneCode + u.PhoneNumber
}
