package repositories

import (
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		ic_number CHAR(12) NOT NULL UNIQUE,
		customer_name VARCHAR(200) NOT NULL,
		phone_code VARCHAR(5) NOT NULL DEFAULT '',
		phone_number VARCHAR(15) NOT NULL DEFAULT '',
		email_address VARCHAR(150) NOT NULL UNIQUE,
		verified_email BOOLEAN NOT NULL DEFAULT FALSE,
		verified_mobile BOOLEAN NOT NULL DEFAULT FALSE,
		terms_agreed BOOLEAN NOT NULL DEFAULT FALSE,
		biometric_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_security (
		user_id INTEGER PRIMARY KEY REFERENCES users(id),
		hashed_pin TEXT NOT NULL,
		pin_last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		failed_attempts INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS otp_attempts (
		id BIGSERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id),
		flow VARCHAR(20) NOT NULL,
		target_type VARCHAR(6) NOT NULL,
		target_value VARCHAR(200) NOT NULL,
		target_phone_code VARCHAR(5) NOT NULL DEFAULT '',
		target_phone_number VARCHAR(15) NOT NULL DEFAULT '',
		otp_code CHAR(4) NOT NULL,
		creation_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		attempt_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_otp_attempts_target
		ON otp_attempts (target_value, creation_time DESC)`,
}

// EnsureSchema applies the table definitions on startup. Statements are
// idempotent, so repeated runs are safe.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
