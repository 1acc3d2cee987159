package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"onboarding/internal/models"
)

type UserSecurityRepository interface {
	GetByUserID(userID int) (*models.UserSecurity, error)
	Create(sec *models.UserSecurity) error
	UpdatePIN(userID int, hashedPIN string, updatedAt time.Time) error
}

type userSecurityRepository struct {
	DB *sql.DB
}

func NewUserSecurityRepository(db *sql.DB) UserSecurityRepository {
	return &userSecurityRepository{DB: db}
}

func (r *userSecurityRepository) GetByUserID(userID int) (*models.UserSecurity, error) {
	const q = `
		SELECT user_id, hashed_pin, pin_last_updated, failed_attempts
		FROM user_security
		WHERE user_id = $1
	`
	s := &models.UserSecurity{}
	err := r.DB.QueryRow(q, userID).Scan(&s.UserID, &s.HashedPIN, &s.PINLastUpdated, &s.FailedAttempts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user security: %w", err)
	}
	return s, nil
}

func (r *userSecurityRepository) Create(sec *models.UserSecurity) error {
	const q = `
		INSERT INTO user_security (user_id, hashed_pin, pin_last_updated, failed_attempts)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.DB.Exec(q, sec.UserID, sec.HashedPIN, sec.PINLastUpdated, sec.FailedAttempts); err != nil {
		return fmt.Errorf("create user security: %w", err)
	}
	return nil
}

func (r *userSecurityRepository) UpdatePIN(userID int, hashedPIN string, updatedAt time.Time) error {
	const q = `
		UPDATE user_security
		SET hashed_pin = $1, pin_last_updated = $2
		WHERE user_id = $3
	`
	if _, err := r.DB.Exec(q, hashedPIN, updatedAt, userID); err != nil {
		return fmt.Errorf("update pin: %w", err)
	}
	return nil
}
