package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding/internal/models"
	"onboarding/internal/services"
)

type MigrationHandler struct {
	Service services.OnboardingService
}

func NewMigrationHandler(service services.OnboardingService) *MigrationHandler {
	return &MigrationHandler{Service: service}
}

// @Summary      Initiate migration
// @Description  Starts identity re-verification for a fully registered user and sends an OTP to the stored mobile
// @Tags         Migration
// @Accept       json
// @Produce      json
// @Param        request  body      models.MigrationRequest  true  "IC number"
// @Success      200      {object}  models.MigrationResponse
// @Router       /api/users/migration/initiate [post]
func (h *MigrationHandler) Initiate(c *gin.Context) {
	var req models.MigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.InitiateMigration(req.ICNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Change email
// @Description  Sends an OTP to the new address; the change commits only when that OTP is verified
// @Tags         Migration
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChangeEmailRequest  true  "User and new email"
// @Success      200      {object}  models.ChangeEmailResponse
// @Router       /api/users/migration/change-email [post]
func (h *MigrationHandler) ChangeEmail(c *gin.Context) {
	var req models.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.ChangeEmail(req.UserID, req.NewEmailAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Change email failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
