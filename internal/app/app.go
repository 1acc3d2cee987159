package app

import (
	"database/sql"
	"fmt"
	"log"

	"onboarding/internal/config"
	"onboarding/internal/handlers"
	"onboarding/internal/middleware"
	"onboarding/internal/repositories"
	"onboarding/internal/routes"
	"onboarding/internal/services"
	"onboarding/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "onboarding/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := repositories.EnsureSchema(db); err != nil {
		log.Fatal("Failed to apply schema: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	securityRepo := repositories.NewUserSecurityRepository(db)
	otpRepo := repositories.NewOTPAttemptRepository(db)

	// === Services ===
	smsClient := utils.NewSMSClient(cfg.SMS.APIKey, cfg.SMS.SenderID, cfg.SMS.DryRun)
	notifier := services.NewNotifier(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
		smsClient,
	)

	onboardingService := services.NewOnboardingService(userRepo, securityRepo, otpRepo, notifier)
	onboardingService.CodeTTL = cfg.OTPTTL()
	onboardingService.RevealCodes = cfg.Security.DebugRevealCodes
	if cfg.Security.DebugRevealCodes {
		log.Print("WARNING: debug_reveal_codes is on, raw OTP codes are echoed in responses")
	}

	authService := services.NewAuthService(
		[]byte(cfg.Security.JWTSecret),
		cfg.Security.AdminUsername,
		cfg.Security.AdminPassword,
	)

	// === Handlers ===
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	otpHandler := handlers.NewOTPHandler(onboardingService)
	migrationHandler := handlers.NewMigrationHandler(onboardingService)
	adminHandler := handlers.NewAdminHandler(onboardingService, authService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Security.JWTSecret),
		onboardingHandler,
		otpHandler,
		migrationHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
