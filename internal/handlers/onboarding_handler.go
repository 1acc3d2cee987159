package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"onboarding/internal/models"
	"onboarding/internal/services"
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

type OnboardingHandler struct {
	Service services.OnboardingService
}

func NewOnboardingHandler(service services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: service}
}

// @Summary      Check IC number status
// @Description  Resolves whether an IC starts a new registration, continues one, or belongs to a registered user
// @Tags         Onboarding
// @Produce      json
// @Param        ic_number  path      string  true  "12-character IC number"
// @Success      200        {object}  models.ICCheckResponse
// @Failure      400        {object}  map[string]string
// @Router       /api/users/check-ic/{ic_number} [get]
func (h *OnboardingHandler) CheckIC(c *gin.Context) {
	icNumber := c.Param("ic_number")
	if len(icNumber) != 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IC number must be exactly 12 characters"})
		return
	}

	status, err := h.Service.CheckICNumber(icNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check IC number"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Start or continue registration
// @Tags         Onboarding
// @Accept       json
// @Produce      json
// @Param        registration  body      models.RegisterUserRequest  true  "Profile fields"
// @Success      200           {object}  models.UserResponse
// @Failure      409           {object}  map[string]string
// @Router       /api/users/registration [post]
func (h *OnboardingHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Service.StartOrContinueRegistration(&req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "User already exists with this IC number. Both email and mobile are verified. Please login instead.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *OnboardingHandler) AgreeTerms(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	ok, err := h.Service.AgreeTerms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept terms"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not found. Please complete registration first."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Terms accepted successfully."})
}

func (h *OnboardingHandler) CreatePIN(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	var req models.CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !pinPattern.MatchString(req.Pin) || !pinPattern.MatchString(req.ConfirmPin) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PIN must contain only numbers (0-9)."})
		return
	}
	if req.Pin != req.ConfirmPin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PINs do not match. Please enter your PIN again."})
		return
	}

	ok, err := h.Service.SetPIN(userID, req.Pin, req.ConfirmPin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set PIN"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not found. Please complete registration first."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "PIN set successfully."})
}

func (h *OnboardingHandler) EnableBiometric(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	var req models.EnableBiometricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.Service.SetBiometric(userID, req.Enable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update biometric setting"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not found. Please complete registration first."})
		return
	}

	msg := "Biometric disabled successfully."
	if req.Enable {
		msg = "Biometric enabled successfully."
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}
