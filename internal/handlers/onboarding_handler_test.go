package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"onboarding/internal/models"
	"onboarding/internal/services"
)

// stubService lets each test override just the calls it cares about.
type stubService struct {
	checkICFn    func(ic string) (*models.ICCheckResponse, error)
	registerFn   func(req *models.RegisterUserRequest) (*models.UserResponse, error)
	setPINFn     func(userID int, pin, confirmPin string) (bool, error)
	agreeTermsFn func(userID int) (bool, error)
}

func (s *stubService) CheckICNumber(ic string) (*models.ICCheckResponse, error) {
	if s.checkICFn != nil {
		return s.checkICFn(ic)
	}
	return &models.ICCheckResponse{Status: services.StatusNew, Action: services.ActionStart}, nil
}

func (s *stubService) StartOrContinueRegistration(req *models.RegisterUserRequest) (*models.UserResponse, error) {
	if s.registerFn != nil {
		return s.registerFn(req)
	}
	return &models.UserResponse{UserID: 1, ICNumber: req.ICNumber}, nil
}

func (s *stubService) SendOTP(userID int, verificationType, newContact string) (*models.OTPResponse, error) {
	return &models.OTPResponse{IsSuccess: true}, nil
}

func (s *stubService) VerifyOTP(attemptID int64, code string) (*models.OTPResponse, error) {
	return &models.OTPResponse{IsSuccess: true}, nil
}

func (s *stubService) AgreeTerms(userID int) (bool, error) {
	if s.agreeTermsFn != nil {
		return s.agreeTermsFn(userID)
	}
	return true, nil
}

func (s *stubService) SetPIN(userID int, pin, confirmPin string) (bool, error) {
	if s.setPINFn != nil {
		return s.setPINFn(userID, pin, confirmPin)
	}
	return true, nil
}

func (s *stubService) SetBiometric(userID int, enable bool) (bool, error) { return true, nil }

func (s *stubService) InitiateMigration(ic string) (*models.MigrationResponse, error) {
	return &models.MigrationResponse{IsSuccess: true}, nil
}

func (s *stubService) ChangeEmail(userID int, newEmail string) (*models.ChangeEmailResponse, error) {
	return &models.ChangeEmailResponse{IsSuccess: true}, nil
}

func (s *stubService) ListUsers() ([]*models.UserResponse, error) { return nil, nil }

func (s *stubService) GetUserByIC(ic string) (*models.User, error) { return nil, nil }

func (s *stubService) LatestAttemptByTarget(target string) (*models.OTPAttempt, error) {
	return nil, nil
}

func onboardingRouter(svc services.OnboardingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOnboardingHandler(svc)
	r.GET("/api/users/check-ic/:ic_number", h.CheckIC)
	r.POST("/api/users/registration", h.Register)
	r.POST("/api/users/pin/:user_id", h.CreatePIN)
	return r
}

func TestCheckICRejectsBadLength(t *testing.T) {
	r := onboardingRouter(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/users/check-ic/12345", nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestRegisterConflictMapsTo409(t *testing.T) {
	svc := &stubService{
		registerFn: func(req *models.RegisterUserRequest) (*models.UserResponse, error) {
			return nil, services.ErrAlreadyRegistered
		},
	}
	r := onboardingRouter(svc)

	body := `{"ic_number":"123456789012","customer_name":"Mariam Khan","phone_code":"+60","phone_number":"123456789","email_address":"mariam@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/registration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	r := onboardingRouter(&stubService{})

	body := `{"ic_number":"123456789012","customer_name":"Mariam Khan","phone_code":"+60","phone_number":"123456789","email_address":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/registration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestCreatePINRejectsNonNumeric(t *testing.T) {
	r := onboardingRouter(&stubService{})

	body := `{"pin":"12345a","confirm_pin":"12345a"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/pin/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestCreatePINRejectsMismatch(t *testing.T) {
	called := false
	svc := &stubService{
		setPINFn: func(userID int, pin, confirmPin string) (bool, error) {
			called = true
			return true, nil
		},
	}
	r := onboardingRouter(svc)

	body := `{"pin":"123456","confirm_pin":"654321"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/pin/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if called {
		t.Error("service must not be called when PINs differ")
	}
}
