package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding/internal/models"
	"onboarding/internal/services"
)

type AdminHandler struct {
	Service services.OnboardingService
	Auth    services.AuthService
}

func NewAdminHandler(service services.OnboardingService, auth services.AuthService) *AdminHandler {
	return &AdminHandler{Service: service, Auth: auth}
}

// @Summary      Admin login
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        login  body      models.AdminLoginRequest  true  "Admin credentials"
// @Success      200    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Service.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetUserByIC(c *gin.Context) {
	icNumber := c.Param("ic_number")
	user, err := h.Service.GetUserByIC(icNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// LatestOTP — support lookup of the newest pending attempt for a destination.
// Not part of the verification contract; verification is attempt-id keyed.
func (h *AdminHandler) LatestOTP(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target query parameter required"})
		return
	}

	attempt, err := h.Service.LatestAttemptByTarget(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch OTP attempt"})
		return
	}
	if attempt == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No pending OTP attempt for target"})
		return
	}
	c.JSON(http.StatusOK, attempt)
}
