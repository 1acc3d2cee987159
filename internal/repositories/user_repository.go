package repositories

import (
	"database/sql"
	"fmt"

	"onboarding/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByICNumber(icNumber string) (*models.User, error)
	Update(user *models.User) error
	List() ([]*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, ic_number, customer_name, phone_code, phone_number, email_address,
	verified_email, verified_mobile, terms_agreed, biometric_enabled,
	registration_date, last_updated
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.ICNumber, &u.CustomerName, &u.PhoneCode, &u.PhoneNumber, &u.EmailAddress,
		&u.VerifiedEmail, &u.VerifiedMobile, &u.TermsAgreed, &u.BiometricEnabled,
		&u.RegistrationDate, &u.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			ic_number, customer_name, phone_code, phone_number, email_address,
			verified_email, verified_mobile, terms_agreed, biometric_enabled,
			registration_date, last_updated
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`
	if err := r.DB.QueryRow(q,
		user.ICNumber, user.CustomerName, user.PhoneCode, user.PhoneNumber, user.EmailAddress,
		user.VerifiedEmail, user.VerifiedMobile, user.TermsAgreed, user.BiometricEnabled,
		user.RegistrationDate, user.LastUpdated,
	).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByICNumber(icNumber string) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE ic_number = $1`, icNumber)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by ic: %w", err)
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET
			customer_name=$1,
			phone_code=$2,
			phone_number=$3,
			email_address=$4,
			verified_email=$5,
			verified_mobile=$6,
			terms_agreed=$7,
			biometric_enabled=$8,
			last_updated=$9
		WHERE id=$10
	`
	if _, err := r.DB.Exec(q,
		user.CustomerName, user.PhoneCode, user.PhoneNumber, user.EmailAddress,
		user.VerifiedEmail, user.VerifiedMobile, user.TermsAgreed, user.BiometricEnabled,
		user.LastUpdated, user.ID,
	); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) List() ([]*models.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.ICNumber, &u.CustomerName, &u.PhoneCode, &u.PhoneNumber, &u.EmailAddress,
			&u.VerifiedEmail, &u.VerifiedMobile, &u.TermsAgreed, &u.BiometricEnabled,
			&u.RegistrationDate, &u.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
