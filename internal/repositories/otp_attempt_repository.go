package repositories

import (
	"database/sql"
	"fmt"

	"onboarding/internal/models"
)

type OTPAttemptRepository interface {
	Create(attempt *models.OTPAttempt) (int64, error)
	GetByID(id int64) (*models.OTPAttempt, error)
	// MarkVerified flips is_verified once; returns false if the attempt was
	// already verified (update-if-not-verified, safe under concurrent calls).
	MarkVerified(id int64) (bool, error)
	IncrementAttempts(id int64) (int, error)
	GetLatestByTarget(target string) (*models.OTPAttempt, error)
}

type otpAttemptRepository struct {
	DB *sql.DB
}

func NewOTPAttemptRepository(db *sql.DB) OTPAttemptRepository {
	return &otpAttemptRepository{DB: db}
}

const otpColumns = `
	id, user_id, flow, target_type, target_value,
	target_phone_code, target_phone_number,
	otp_code, creation_time, is_verified, attempt_count
`

func scanOTPAttempt(row *sql.Row) (*models.OTPAttempt, error) {
	a := &models.OTPAttempt{}
	var userID sql.NullInt64
	err := row.Scan(
		&a.ID, &userID, &a.Flow, &a.TargetType, &a.TargetValue,
		&a.TargetPhoneCode, &a.TargetPhoneNumber,
		&a.OTPCode, &a.CreationTime, &a.IsVerified, &a.AttemptCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		a.UserID = &id
	}
	return a, nil
}

func (r *otpAttemptRepository) Create(attempt *models.OTPAttempt) (int64, error) {
	const q = `
		INSERT INTO otp_attempts (
			user_id, flow, target_type, target_value,
			target_phone_code, target_phone_number,
			otp_code, creation_time, is_verified, attempt_count
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE,0)
		RETURNING id
	`
	var userID interface{}
	if attempt.UserID != nil {
		userID = *attempt.UserID
	}
	if err := r.DB.QueryRow(q,
		userID, attempt.Flow, attempt.TargetType, attempt.TargetValue,
		attempt.TargetPhoneCode, attempt.TargetPhoneNumber,
		attempt.OTPCode, attempt.CreationTime,
	).Scan(&attempt.ID); err != nil {
		return 0, fmt.Errorf("create otp attempt: %w", err)
	}
	return attempt.ID, nil
}

func (r *otpAttemptRepository) GetByID(id int64) (*models.OTPAttempt, error) {
	row := r.DB.QueryRow(`SELECT `+otpColumns+` FROM otp_attempts WHERE id = $1`, id)
	a, err := scanOTPAttempt(row)
	if err != nil {
		return nil, fmt.Errorf("get otp attempt: %w", err)
	}
	return a, nil
}

func (r *otpAttemptRepository) MarkVerified(id int64) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE otp_attempts SET is_verified = TRUE WHERE id = $1 AND is_verified = FALSE`, id,
	)
	if err != nil {
		return false, fmt.Errorf("mark otp verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark otp verified: %w", err)
	}
	return n == 1, nil
}

// IncrementAttempts — +1 попытка, возвращает новое значение attempt_count.
func (r *otpAttemptRepository) IncrementAttempts(id int64) (int, error) {
	const q = `
		UPDATE otp_attempts
		SET attempt_count = attempt_count + 1
		WHERE id = $1
		RETURNING attempt_count
	`
	var attempts int
	if err := r.DB.QueryRow(q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return attempts, nil
}

// GetLatestByTarget — last unverified attempt for a destination. Support
// tooling only; the verify path is keyed strictly by attempt id.
func (r *otpAttemptRepository) GetLatestByTarget(target string) (*models.OTPAttempt, error) {
	const q = `
		SELECT ` + otpColumns + `
		FROM otp_attempts
		WHERE target_value = $1 AND is_verified = FALSE
		ORDER BY creation_time DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, target)
	a, err := scanOTPAttempt(row)
	if err != nil {
		return nil, fmt.Errorf("get latest otp by target: %w", err)
	}
	return a, nil
}
