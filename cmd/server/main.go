package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"clubportal/config"
	"clubportal/internal/adapters/auth"
	"clubportal/internal/adapters/email"
	httpdelivery "clubportal/internal/delivery/http"
	"clubportal/internal/delivery/http/controllers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/repository/postgres"
	"clubportal/internal/services"
)

// @title Club Portal API
// @version 1.0
// @description Membership, event, and check-in backend for a university club.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	// Adapters
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to construct mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authSvc := services.NewAuthService(profileRepo, hasher, jwtManager, cfg.TokenExpiry)
	profileSvc := services.NewProfileService(profileRepo)
	eventSvc := services.NewEventService(eventRepo, cfg.CheckInGrace)
	membershipSvc := services.NewMembershipService(membershipRepo, profileRepo, emailSvc, logger)
	checkInSvc := services.NewCheckInService(eventRepo, membershipRepo, profileRepo, attendanceRepo)
	applicationSvc := services.NewApplicationService(applicationRepo, profileRepo, emailSvc, logger)

	// Delivery
	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:        controllers.NewAuthController(logger, authSvc),
		Profile:     controllers.NewProfileController(logger, profileSvc),
		Event:       controllers.NewEventController(logger, eventSvc),
		Membership:  controllers.NewMembershipController(logger, membershipSvc),
		CheckIn:     controllers.NewCheckInController(logger, checkInSvc),
		Application: controllers.NewApplicationController(logger, applicationSvc),
	}, jwtManager)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting clubportal", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
