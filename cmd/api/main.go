package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/swagatham/donation-api/internal/handlers"
	"github.com/swagatham/donation-api/internal/otp"
	"github.com/swagatham/donation-api/internal/repo/postgres"
	"github.com/swagatham/donation-api/internal/repo/redisrate"
	"github.com/swagatham/donation-api/internal/service"
	"github.com/swagatham/donation-api/internal/sms"
	"github.com/swagatham/donation-api/pkg/config"
	"github.com/swagatham/donation-api/pkg/database"
	"github.com/swagatham/donation-api/pkg/events"
	"github.com/swagatham/donation-api/pkg/logger"
	mw "github.com/swagatham/donation-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	var eventBus events.Publisher
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer bus.Close()
		eventBus = bus
	} else {
		eventBus = events.NopPublisher{}
	}

	var sender sms.Sender
	if cfg.SMS.DevMode {
		sender = sms.NewDevSender()
	} else {
		sender = sms.NewTwilioSender(cfg.SMS)
	}

	// Repositories
	usersRepo := postgres.NewUsersRepo(pool)
	paymentsRepo := postgres.NewPaymentsRepo(pool)
	kycRepo := postgres.NewKYCRepo(pool)
	adminsRepo := postgres.NewAdminsRepo(pool)

	otpStore := otp.NewRedisStore(redisClient)
	limiter := redisrate.NewRedisLimiter(redisClient)

	// Services
	otpService := service.NewOTPService(otpStore, sender, usersRepo, eventBus, cfg)
	profileService := service.NewProfileService(usersRepo, paymentsRepo, kycRepo)
	paymentService := service.NewPaymentService(paymentsRepo, eventBus)
	kycService := service.NewKYCService(kycRepo, eventBus)
	adminService := service.NewAdminService(adminsRepo, cfg)

	h := handlers.New(otpService, profileService, paymentService, kycService, adminService, limiter, cfg)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("donation-api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting donation API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
