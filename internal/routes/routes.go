package routes

import (
	"github.com/gin-gonic/gin"

	"onboarding/internal/handlers"
	"onboarding/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	onboardingHandler *handlers.OnboardingHandler,
	otpHandler *handlers.OTPHandler,
	migrationHandler *handlers.MigrationHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public onboarding surface
	users := r.Group("/api/users")
	{
		users.GET("/check-ic/:ic_number", onboardingHandler.CheckIC)
		users.POST("/registration", onboardingHandler.Register)
		users.POST("/send-otp", otpHandler.SendOTP)
		users.POST("/verify-otp", otpHandler.VerifyOTP)
		users.POST("/agree-terms/:user_id", onboardingHandler.AgreeTerms)
		users.POST("/pin/:user_id", onboardingHandler.CreatePIN)
		users.POST("/biometric/:user_id", onboardingHandler.EnableBiometric)
		users.POST("/migration/initiate", migrationHandler.Initiate)
		users.POST("/migration/change-email", migrationHandler.ChangeEmail)
	}

	r.POST("/admin/login", adminHandler.Login)

	// ---- admin/support surface (JWT)
	admin := r.Group("/admin", middleware.AdminAuth(jwtSecret))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/ic/:ic_number", adminHandler.GetUserByIC)
		admin.GET("/otp/latest", adminHandler.LatestOTP)
	}

	return r
}
