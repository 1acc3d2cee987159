package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding/internal/models"
	"onboarding/internal/services"
)

type OTPHandler struct {
	Service services.OnboardingService
}

func NewOTPHandler(service services.OnboardingService) *OTPHandler {
	return &OTPHandler{Service: service}
}

// @Summary      Send OTP
// @Description  Issues a one-time code to the user's email or mobile; the flow (registration, migration) is resolved from the user's state
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      models.SendOTPRequest  true  "User and channel"
// @Success      200      {object}  models.OTPResponse
// @Router       /api/users/send-otp [post]
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.SendOTP(req.UserID, req.VerificationType, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Verify OTP
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyOTPRequest  true  "Attempt id and code"
// @Success      200      {object}  models.OTPResponse
// @Failure      400      {object}  map[string]string
// @Router       /api/users/verify-otp [post]
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.VerifyOTP(req.AttemptID, req.OTPCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}
	if !result.IsSuccess {
		c.JSON(http.StatusBadRequest, gin.H{"message": result.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}
