package models

import "time"

// UserSecurity — одна запись на пользователя, создаётся лениво при первой установке PIN.
// Храним только bcrypt-хэш PIN (HashedPIN).
type UserSecurity struct {
	UserID         int       `json:"user_id"`
	HashedPIN      string    `json:"-"`
	PINLastUpdated time.Time `json:"pin_last_updated"`
	FailedAttempts int       `json:"failed_attempts"`
}
