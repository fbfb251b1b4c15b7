package api

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ScholarStream/scholarship_service/config"
	"github.com/ScholarStream/scholarship_service/infra/db"
	"github.com/ScholarStream/scholarship_service/infra/queue"
	"github.com/ScholarStream/scholarship_service/internal/api/rest/handlers"
	"github.com/ScholarStream/scholarship_service/internal/clients/firebaseauth"
	"github.com/ScholarStream/scholarship_service/internal/clients/stripeclient"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

func StartServer(cfg config.Config) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "scholarship").Logger()
	if cfg.Env != "prod" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// ---------- DB ----------
	pool, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection error")
	}
	logger.Info().Str("db", cfg.MongoDBName).Msg("database connected")
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := pool.Disconnect(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("database disconnect error")
		}
	}()

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	defer kafkaProducer.Close()

	stripeClient := stripeclient.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	var verifier interfaces.TokenVerifier
	if cfg.FirebaseCredentials != "" {
		v, err := firebaseauth.New(ctx, cfg.FirebaseCredentials)
		if err != nil {
			logger.Fatal().Err(err).Msg("firebase init error")
		}
		verifier = v
	} else {
		logger.Warn().Msg("FIREBASE_SERVICE_ACCOUNT not set, federated login disabled")
	}

	authHelper := helper.SetupAuth(cfg.JWTSecret)

	// ---------- Repositories ----------
	database := pool.Database()
	userRepo := repository.NewUserRepository(database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("user index error")
	}
	scholarshipRepo := repository.NewScholarshipRepository(database)
	applicationRepo := repository.NewApplicationRepository(database)
	reviewRepo := repository.NewReviewRepository(database)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper, verifier, logger)
	scholarshipSvc := services.NewScholarshipService(scholarshipRepo, logger)
	applicationSvc := services.NewApplicationService(applicationRepo, scholarshipRepo, kafkaProducer, logger)
	paymentSvc := services.NewPaymentService(applicationRepo, scholarshipRepo, stripeClient, kafkaProducer, cfg.FrontendURL, logger)
	reviewSvc := services.NewReviewService(reviewRepo, applicationRepo, scholarshipRepo, logger)
	analyticsSvc := services.NewAnalyticsService(userRepo, applicationRepo, logger)

	// ---------- App ----------
	app := fiber.New(fiber.Config{
		AppName: "scholarship-service",
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(api)
	handlers.NewScholarshipHandler(scholarshipSvc, userSvc, authHelper).SetupRoutes(api)
	handlers.NewApplicationHandler(applicationSvc, paymentSvc, userSvc, authHelper).SetupRoutes(api)
	handlers.NewPaymentHandler(paymentSvc, userSvc, authHelper).SetupRoutes(api)
	handlers.NewReviewHandler(reviewSvc, userSvc, authHelper).SetupRoutes(api)
	handlers.NewAnalyticsHandler(analyticsSvc, userSvc, authHelper).SetupRoutes(api)

	// ---------- Listen ----------
	go func() {
		logger.Info().Str("addr", cfg.ServerPort).Msg("listening")
		if err := app.Listen(cfg.ServerPort); err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
