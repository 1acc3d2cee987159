package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"onboarding/internal/models"
	"onboarding/internal/repositories"
	"onboarding/internal/utils"
)

// ErrAlreadyRegistered — попытка повторной регистрации полностью
// подтверждённого IC. Транспорт мапит в 409.
var ErrAlreadyRegistered = errors.New("user already exists with this IC number")

const defaultOTPTTL = 5 * time.Minute

// IC status check results.
const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusExists     = "EXISTS"

	ActionStart    = "START"
	ActionContinue = "CONTINUE"
)

type OnboardingService interface {
	CheckICNumber(icNumber string) (*models.ICCheckResponse, error)
	StartOrContinueRegistration(req *models.RegisterUserRequest) (*models.UserResponse, error)
	SendOTP(userID int, verificationType, newContact string) (*models.OTPResponse, error)
	VerifyOTP(attemptID int64, code string) (*models.OTPResponse, error)
	AgreeTerms(userID int) (bool, error)
	SetPIN(userID int, pin, confirmPin string) (bool, error)
	SetBiometric(userID int, enable bool) (bool, error)
	InitiateMigration(icNumber string) (*models.MigrationResponse, error)
	ChangeEmail(userID int, newEmail string) (*models.ChangeEmailResponse, error)
	ListUsers() ([]*models.UserResponse, error)
	GetUserByIC(icNumber string) (*models.User, error)
	LatestAttemptByTarget(target string) (*models.OTPAttempt, error)
}

type onboardingService struct {
	userRepo     repositories.UserRepository
	securityRepo repositories.UserSecurityRepository
	otpRepo      repositories.OTPAttemptRepository
	notifier     Notifier

	CodeTTL     time.Duration // если 0 — возьмём defaultOTPTTL
	RevealCodes bool          // echo raw codes in responses, test envs only
}

func NewOnboardingService(
	userRepo repositories.UserRepository,
	securityRepo repositories.UserSecurityRepository,
	otpRepo repositories.OTPAttemptRepository,
	notifier Notifier,
) *onboardingService {
	return &onboardingService{
		userRepo:     userRepo,
		securityRepo: securityRepo,
		otpRepo:      otpRepo,
		notifier:     notifier,
		CodeTTL:      defaultOTPTTL,
	}
}

func (s *onboardingService) ttl() time.Duration {
	if s.CodeTTL <= 0 {
		return defaultOTPTTL
	}
	return s.CodeTTL
}

// CheckICNumber resolves what a caller holding this IC should do next:
// start fresh, continue a half-finished registration, or sign in.
func (s *onboardingService) CheckICNumber(icNumber string) (*models.ICCheckResponse, error) {
	user, err := s.userRepo.GetByICNumber(icNumber)
	if err != nil {
		return nil, err
	}

	if user != nil && user.FullyVerified() {
		return &models.ICCheckResponse{
			Status:  StatusExists,
			Message: "Account already exists. User is fully registered.",
			Action:  ActionContinue,
			UserID:  &user.ID,
		}, nil
	}
	if user != nil {
		return &models.ICCheckResponse{
			Status:  StatusInProgress,
			Message: "Registration incomplete. Continue verification?",
			Action:  ActionContinue,
			UserID:  &user.ID,
		}, nil
	}
	return &models.ICCheckResponse{
		Status:  StatusNew,
		Message: "IC not found. Start new registration.",
		Action:  ActionStart,
	}, nil
}

func (s *onboardingService) GetUserByIC(icNumber string) (*models.User, error) {
	return s.userRepo.GetByICNumber(icNumber)
}

// StartOrContinueRegistration creates the user record, or overwrites the
// mutable profile fields while verification is still unfinished. A fully
// verified IC can never be re-registered.
func (s *onboardingService) StartOrContinueRegistration(req *models.RegisterUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByICNumber(req.ICNumber)
	if err != nil {
		return nil, err
	}

	if user != nil && user.FullyVerified() {
		return nil, ErrAlreadyRegistered
	}

	now := time.Now().UTC()
	if user == nil {
		user = &models.User{
			ICNumber:         req.ICNumber,
			CustomerName:     req.CustomerName,
			PhoneCode:        req.PhoneCode,
			PhoneNumber:      req.PhoneNumber,
			EmailAddress:     req.EmailAddress,
			RegistrationDate: now,
			LastUpdated:      now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		// typo corrections are fine until both channels are verified
		user.CustomerName = req.CustomerName
		user.PhoneCode = req.PhoneCode
		user.PhoneNumber = req.PhoneNumber
		user.EmailAddress = req.EmailAddress
		user.LastUpdated = now
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	return userResponse(user), nil
}

// splitMobileTarget derives phone code and national number from a combined
// dialable string: the last 10 characters are taken as the number, the rest
// as the code. Done once at issuance so the commit step never re-derives.
func splitMobileTarget(value string) (code, number string) {
	if len(value) <= 10 {
		return "", value
	}
	return value[:len(value)-10], value[len(value)-10:]
}

// SendOTP resolves the flow from context (explicit new contact -> ChangeEmail,
// fully verified user -> Migration, otherwise Registration), issues a fresh
// 4-digit code and records the attempt. Previously issued attempts for the
// same target stay live until they expire.
func (s *onboardingService) SendOTP(userID int, verificationType, newContact string) (*models.OTPResponse, error) {
	if verificationType != models.TargetEmail && verificationType != models.TargetMobile {
		return &models.OTPResponse{IsSuccess: false, Message: "Invalid verification type"}, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.OTPResponse{IsSuccess: false, Message: "User not found. Please start registration first."}, nil
	}

	var flow, target string
	switch {
	case newContact != "":
		flow = models.FlowChangeEmail
		target = newContact
	case user.FullyVerified():
		flow = models.FlowMigration
		if verificationType == models.TargetEmail {
			target = user.EmailAddress
		} else {
			target = user.Mobile()
		}
	default:
		flow = models.FlowRegistration
		if verificationType == models.TargetEmail {
			target = user.EmailAddress
		} else {
			target = user.Mobile()
		}
	}

	if target == "" {
		return &models.OTPResponse{IsSuccess: false, Message: "Contact information not available"}, nil
	}

	var obfuscated string
	if verificationType == models.TargetEmail {
		obfuscated = utils.ObfuscateEmail(target)
	} else {
		obfuscated = utils.ObfuscateMobile(target)
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	attempt := &models.OTPAttempt{
		UserID:       &user.ID,
		Flow:         flow,
		TargetType:   verificationType,
		TargetValue:  target,
		OTPCode:      code,
		CreationTime: time.Now().UTC(),
	}
	if verificationType == models.TargetMobile {
		if newContact != "" {
			attempt.TargetPhoneCode, attempt.TargetPhoneNumber = splitMobileTarget(target)
		} else {
			attempt.TargetPhoneCode, attempt.TargetPhoneNumber = user.PhoneCode, user.PhoneNumber
		}
	}

	if _, err := s.otpRepo.Create(attempt); err != nil {
		return nil, err
	}

	// Delivery failure does not undo the attempt: the code can still be
	// verified, or it simply expires unused.
	if s.notifier != nil {
		if err := s.notifier.SendCode(verificationType, target, code); err != nil {
			log.Printf("[otp][send] delivery failed: user_id=%d target=%s err=%v", user.ID, obfuscated, err)
		}
	}

	log.Printf("[otp][send] flow=%s user_id=%d target=%s attempt_id=%d", flow, user.ID, obfuscated, attempt.ID)

	resp := &models.OTPResponse{
		IsSuccess:        true,
		Message:          "OTP sent successfully",
		ObfuscatedTarget: obfuscated,
		AttemptID:        &attempt.ID,
	}
	if s.RevealCodes {
		resp.DebugCode = code
	}
	return resp, nil
}

// VerifyOTP runs the ordered checks of the verification state machine.
// The expiry check deliberately comes after the code comparison: a correct
// but late submission reports "expired" and does not bump attempt_count.
func (s *onboardingService) VerifyOTP(attemptID int64, code string) (*models.OTPResponse, error) {
	attempt, err := s.otpRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return &models.OTPResponse{IsSuccess: false, Message: "OTP attempt not found."}, nil
	}

	if attempt.IsVerified {
		return &models.OTPResponse{IsSuccess: false, Message: "This OTP has already been verified."}, nil
	}

	if attempt.OTPCode != code {
		if _, err := s.otpRepo.IncrementAttempts(attempt.ID); err != nil {
			return nil, err
		}
		return &models.OTPResponse{IsSuccess: false, Message: "Incorrect OTP. Please try again."}, nil
	}

	if time.Since(attempt.CreationTime) > s.ttl() {
		return &models.OTPResponse{IsSuccess: false, Message: "OTP expired. Please request a new one."}, nil
	}

	ok, err := s.otpRepo.MarkVerified(attempt.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race against a concurrent verify of the same attempt
		return &models.OTPResponse{IsSuccess: false, Message: "This OTP has already been verified."}, nil
	}

	if attempt.UserID == nil {
		return &models.OTPResponse{IsSuccess: false, Message: "Invalid OTP record."}, nil
	}

	user, err := s.userRepo.GetByID(*attempt.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.OTPResponse{IsSuccess: false, Message: "User not found."}, nil
	}

	now := time.Now().UTC()
	switch attempt.Flow {
	case models.FlowRegistration:
		if attempt.TargetType == models.TargetEmail {
			user.VerifiedEmail = true
		} else {
			user.VerifiedMobile = true
		}
		user.LastUpdated = now
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
		if user.FullyVerified() {
			return &models.OTPResponse{
				IsSuccess: true,
				Message:   "Registration completed! Please set your PIN and accept terms.",
			}, nil
		}
		return &models.OTPResponse{IsSuccess: true, Message: "OTP verified. Please verify your other contact."}, nil

	case models.FlowChangeEmail:
		if attempt.TargetType == models.TargetEmail {
			user.EmailAddress = attempt.TargetValue
			user.VerifiedEmail = true
		} else {
			user.PhoneCode = attempt.TargetPhoneCode
			user.PhoneNumber = attempt.TargetPhoneNumber
			user.VerifiedMobile = true
		}
		user.LastUpdated = now
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
		msg := "Mobile number changed successfully."
		if attempt.TargetType == models.TargetEmail {
			msg = "Email changed successfully."
		}
		return &models.OTPResponse{IsSuccess: true, Message: msg}, nil

	case models.FlowMigration:
		user.LastUpdated = now
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
		return &models.OTPResponse{IsSuccess: true, Message: "OTP verified successfully."}, nil

	default:
		return &models.OTPResponse{IsSuccess: false, Message: "Unknown flow type."}, nil
	}
}

func (s *onboardingService) AgreeTerms(userID int) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	user.TermsAgreed = true
	user.LastUpdated = time.Now().UTC()
	if err := s.userRepo.Update(user); err != nil {
		return false, err
	}
	return true, nil
}

// SetPIN hashes the PIN and upserts the security record, creating it lazily
// on first call.
func (s *onboardingService) SetPIN(userID int, pin, confirmPin string) (bool, error) {
	if pin != confirmPin {
		return false, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	hashed, err := utils.HashPIN(pin)
	if err != nil {
		return false, fmt.Errorf("hash pin: %w", err)
	}

	now := time.Now().UTC()
	security, err := s.securityRepo.GetByUserID(user.ID)
	if err != nil {
		return false, err
	}
	if security == nil {
		security = &models.UserSecurity{
			UserID:         user.ID,
			HashedPIN:      hashed,
			PINLastUpdated: now,
		}
		if err := s.securityRepo.Create(security); err != nil {
			return false, err
		}
	} else {
		if err := s.securityRepo.UpdatePIN(user.ID, hashed, now); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *onboardingService) SetBiometric(userID int, enable bool) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	user.BiometricEnabled = enable
	user.LastUpdated = time.Now().UTC()
	if err := s.userRepo.Update(user); err != nil {
		return false, err
	}
	return true, nil
}

// InitiateMigration re-verifies an already fully onboarded user: it issues an
// OTP to the stored mobile straight away so the caller can go directly to the
// verify step.
func (s *onboardingService) InitiateMigration(icNumber string) (*models.MigrationResponse, error) {
	user, err := s.userRepo.GetByICNumber(icNumber)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.MigrationResponse{
			IsSuccess: false,
			Message:   "User not found. Please register as a new user.",
		}, nil
	}

	if !user.FullyVerified() {
		return &models.MigrationResponse{
			IsSuccess: false,
			Message:   "Migration not allowed. Please verify both your email and mobile number first.",
		}, nil
	}

	// flow resolution lands on Migration since the user is fully verified
	otp, err := s.SendOTP(user.ID, models.TargetMobile, "")
	if err != nil {
		return nil, err
	}
	if !otp.IsSuccess {
		return &models.MigrationResponse{IsSuccess: false, Message: otp.Message}, nil
	}

	return &models.MigrationResponse{
		IsSuccess:        true,
		Message:          "Migration initiated. Please verify your identity.",
		UserID:           &user.ID,
		ObfuscatedMobile: utils.ObfuscateMobile(user.Mobile()),
		ObfuscatedEmail:  utils.ObfuscateEmail(user.EmailAddress),
		AttemptID:        otp.AttemptID,
	}, nil
}

// ChangeEmail issues an OTP to the new address. The stored email is not
// touched until that attempt is verified.
func (s *onboardingService) ChangeEmail(userID int, newEmail string) (*models.ChangeEmailResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.ChangeEmailResponse{IsSuccess: false, Message: "User not found."}, nil
	}

	if !user.FullyVerified() {
		return &models.ChangeEmailResponse{
			IsSuccess: false,
			Message:   "You must complete registration before changing contact information.",
		}, nil
	}

	otp, err := s.SendOTP(userID, models.TargetEmail, strings.TrimSpace(newEmail))
	if err != nil {
		return nil, err
	}
	if !otp.IsSuccess {
		return &models.ChangeEmailResponse{IsSuccess: false, Message: otp.Message}, nil
	}

	return &models.ChangeEmailResponse{
		IsSuccess: true,
		Message:   fmt.Sprintf("OTP sent to new email %s. Please verify to complete the change.", otp.ObfuscatedTarget),
		AttemptID: otp.AttemptID,
	}, nil
}

func (s *onboardingService) ListUsers() ([]*models.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	res := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, userResponse(u))
	}
	return res, nil
}

func (s *onboardingService) LatestAttemptByTarget(target string) (*models.OTPAttempt, error) {
	return s.otpRepo.GetLatestByTarget(target)
}

func userResponse(u *models.User) *models.UserResponse {
	return &models.UserResponse{
		UserID:           u.ID,
		ICNumber:         u.ICNumber,
		CustomerName:     u.CustomerName,
		PhoneCode:        u.PhoneCode,
		PhoneNumber:      u.PhoneNumber,
		EmailAddress:     u.EmailAddress,
		BiometricEnabled: u.BiometricEnabled,
		RegistrationDate: u.RegistrationDate,
	}
}
