package server

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"meridian-api/internal/approval"
	"meridian-api/internal/auth"
	"meridian-api/internal/client/usdc"
	"meridian-api/internal/compliance"
	"meridian-api/internal/db"
	"meridian-api/internal/handlers"
	"meridian-api/internal/logger"
	"meridian-api/internal/middleware"
	"meridian-api/internal/services"
	"meridian-api/internal/verification"
)

// Handler Definitions
var (
	healthHandler   *handlers.HealthHandler
	userHandler     *handlers.UserHandler
	passkeyHandler  *handlers.PasskeyHandler
	vaultHandler    *handlers.VaultHandler
	transferHandler *handlers.TransferHandler
	approvalHandler *handlers.ApprovalHandler
	otpHandler      *handlers.OTPHandler

	tokenIssuer *auth.TokenIssuer

	// Database
	dbQueries *db.Queries
)

func InitializeHandlers() {
	// Logger must be ready before any service captures it.
	logger.InitLogger()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		logger.Fatal("Unable to parse database connection string", zap.Error(err))
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}
	dbQueries = db.New(connPool)

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Fatal("SESSION_SECRET environment variable is required")
	}
	tokenIssuer = auth.NewTokenIssuer(sessionSecret, "meridian-api")

	vaultService, err := services.NewVaultService(dbQueries, os.Getenv("VAULT_MASTER_KEY"))
	if err != nil {
		logger.Fatal("Unable to initialize vault service", zap.Error(err))
	}

	emailService := services.NewEmailService(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM_ADDRESS"),
		os.Getenv("EMAIL_FROM_NAME"),
	)

	screeningClient := compliance.NewClient(
		os.Getenv("SCREENING_API_URL"),
		os.Getenv("SCREENING_API_KEY"),
	)

	otpSender := services.NewVaultOTPSender(dbQueries, emailService)
	approvalService := approval.NewService(screeningClient, otpSender)

	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		logger.Fatal("RPC_URL environment variable is required")
	}
	chainID := int64(1)
	if raw := os.Getenv("CHAIN_ID"); raw != "" {
		chainID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Fatal("Invalid CHAIN_ID", zap.Error(err))
		}
	}
	tokenClient, err := usdc.NewClient(rpcURL, os.Getenv("USDC_CONTRACT_ADDRESS"), chainID)
	if err != nil {
		logger.Fatal("Unable to create USDC client", zap.Error(err))
	}

	userService := services.NewUserService(dbQueries)
	transferService := services.NewTransferService(dbQueries, vaultService, approvalService, tokenClient, emailService)
	otpService := verification.NewOTPService(dbQueries, emailService)
	passkeyStrategy := verification.NewPasskeyStrategy(dbQueries, verification.NewECDSAAssertionValidator())

	commonServices := handlers.NewCommonServices(
		dbQueries,
		userService,
		vaultService,
		transferService,
		approvalService,
		otpService,
		passkeyStrategy,
		tokenIssuer,
		tokenClient,
	)

	healthHandler = handlers.NewHealthHandler()
	userHandler = handlers.NewUserHandler(commonServices)
	passkeyHandler = handlers.NewPasskeyHandler(commonServices)
	vaultHandler = handlers.NewVaultHandler(commonServices)
	transferHandler = handlers.NewTransferHandler(commonServices)
	approvalHandler = handlers.NewApprovalHandler(commonServices)
	otpHandler = handlers.NewOTPHandler(commonServices)
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogging())

	rateLimiter := middleware.NewRateLimiter(20, 40)
	router.Use(rateLimiter.Middleware())

	// Health check
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/users/register", userHandler.Register)
		v1.POST("/users/login", userHandler.Login)
		v1.GET("/tiers", approvalHandler.ListTiers)
		v1.GET("/tiers/:level", approvalHandler.GetTier)

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(auth.EnsureValidSession(tokenIssuer, dbQueries))
		{
			// Profile
			protected.GET("/users/me", userHandler.GetMe)
			protected.PUT("/users/me", userHandler.UpdateMe)

			// Passkeys
			protected.POST("/passkeys", passkeyHandler.Register)
			protected.GET("/passkeys", passkeyHandler.List)
			protected.DELETE("/passkeys/:passkey_id", passkeyHandler.Delete)
			protected.POST("/passkeys/authenticate/begin", passkeyHandler.BeginAuthentication)
			protected.POST("/passkeys/authenticate/complete", passkeyHandler.CompleteAuthentication)

			// One-time codes
			protected.POST("/otp/request", otpHandler.Request)
			protected.POST("/otp/verify", otpHandler.Verify)

			// Vaults
			protected.POST("/vaults", vaultHandler.Create)
			protected.GET("/vaults", vaultHandler.List)
			protected.GET("/vaults/:vault_id", vaultHandler.Get)
			protected.DELETE("/vaults/:vault_id", vaultHandler.Delete)
			protected.GET("/vaults/:vault_id/qr", vaultHandler.AddressQRCode)
			protected.GET("/vaults/:vault_id/balance", vaultHandler.Balance)
			protected.GET("/vaults/:vault_id/transfers", transferHandler.ListByVault)

			// Transfers
			protected.POST("/transfers", transferHandler.Create)
			protected.GET("/transfers/:transfer_id", transferHandler.Get)

			// Approval engine
			protected.GET("/approvals/classify", approvalHandler.Classify)
			protected.POST("/approvals/process", approvalHandler.Process)

			// Reviewer-only routes
			reviewer := protected.Group("/compliance")
			reviewer.Use(auth.RequireRoles("admin", "reviewer"))
			{
				reviewer.POST("/reviews", approvalHandler.SubmitReview)
				reviewer.GET("/reviews/:address", approvalHandler.GetLatestReview)
			}
		}
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
