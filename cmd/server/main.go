package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/momentumafrica/momentum-api/internal/config"
	"github.com/momentumafrica/momentum-api/internal/database"
	"github.com/momentumafrica/momentum-api/internal/handlers"
	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/middleware"
	"github.com/momentumafrica/momentum-api/internal/realtime"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/types"

	_ "github.com/momentumafrica/momentum-api/docs/api" // Swagger docs
)

// @title Momentum API
// @version 1.0.0
// @description Community platform backend: score ledger, gated opportunities, AI mentor, realtime feeds
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/momentumafrica/momentum-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", "error", err)
	}

	// Seed content tables when empty
	if cfg.SeedOnBoot {
		if err := services.Seed(zlog, db); err != nil {
			zlog.Fatal("Failed to seed content", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Realtime feed fanout: local hub, plus a Redis bus when configured so
	// every instance sees every event.
	hub := realtime.NewHub()
	var bus realtime.Bus
	if cfg.RedisAddr != "" {
		bus, err = realtime.NewRedisBus(zlog, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		if err != nil {
			zlog.Fatal("Failed to connect to redis", "error", err)
		}
		defer bus.Close()
		if err := bus.StartForwarder(ctx, hub.Publish); err != nil {
			zlog.Fatal("Failed to start feed forwarder", "error", err)
		}
	}
	publisher := realtime.NewPublisher(zlog, hub, bus)

	// AI mentor, optional
	var mentor *services.MentorService
	if cfg.GeminiAPIKey != "" {
		mentor, err = services.NewMentorService(ctx, zlog, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			zlog.Fatal("Failed to create mentor service", "error", err)
		}
		defer mentor.Close()
	} else {
		zlog.Warn("GEMINI_API_KEY not set, mentor endpoint degraded")
	}

	// Avatar blob storage, optional
	var blob *services.BlobService
	if cfg.GCSBucket != "" {
		blob, err = services.NewBlobService(ctx, zlog, cfg.GCSBucket, cfg.GCSCredentials, cfg.CDNDomain)
		if err != nil {
			zlog.Fatal("Failed to create blob service", "error", err)
		}
		defer blob.Close()
	} else {
		zlog.Warn("GCS_BUCKET_NAME not set, avatar upload disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("momentum")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	communityHandler := &handlers.CommunityHandler{DB: db, Log: zlog, Publisher: publisher}
	postHandler := &handlers.PostHandler{DB: db, Log: zlog, Publisher: publisher, Blob: blob}
	profileHandler := &handlers.ProfileHandler{DB: db, Log: zlog, Blob: blob}
	opportunityHandler := &handlers.OpportunityHandler{DB: db, Log: zlog}
	mentorHandler := &handlers.MentorHandler{DB: db, Log: zlog, Mentor: mentor}
	feedHandler := &handlers.FeedHandler{DB: db, Log: zlog, Publisher: publisher}
	navigationHandler := &handlers.NavigationHandler{}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db, Redis: realtime.RedisClient(bus)}

	// Public routes
	api.Get("/health", healthHandler.Health)
	api.Get("/communities", communityHandler.ListCommunities)
	api.Get("/communities/:id/posts", communityHandler.ListPosts)
	api.Get("/posts/:id/replies", postHandler.ListReplies)
	api.Get("/posts/:id/collaborators", postHandler.ListCollaborators)
	api.Get("/leaderboard", profileHandler.Leaderboard)
	api.Get("/opportunities", middleware.OptionalAuth(cfg), opportunityHandler.ListOpportunities)
	api.Get("/navigate", middleware.OptionalAuth(cfg), navigationHandler.Navigate)

	// Authenticated routes
	api.Post("/signup/complete", middleware.AuthUser(cfg), profileHandler.CompleteSignup)
	api.Get("/profile", middleware.AuthUser(cfg), profileHandler.GetProfile)
	api.Put("/profile", middleware.AuthUser(cfg), profileHandler.UpdateProfile)
	api.Post("/profile/avatar", middleware.AuthUser(cfg), profileHandler.UploadAvatar)
	api.Post("/communities/:id/posts", middleware.AuthUser(cfg), communityHandler.CreatePost)
	api.Post("/posts/images", middleware.AuthUser(cfg), postHandler.UploadImage)
	api.Post("/posts/:id/replies", middleware.AuthUser(cfg), postHandler.AddReply)
	api.Post("/posts/:id/collaborators", middleware.AuthUser(cfg), postHandler.ToggleCollaborator)
	api.Post("/mentor/refine", middleware.AuthUser(cfg), mentorHandler.RefineIdea)
	api.Get("/feed/:communityId", middleware.AuthUser(cfg), feedHandler.Subscribe)

	// Admin-only routes
	api.Post("/opportunities", middleware.AuthAdmin(cfg), opportunityHandler.UpsertOpportunities)
	api.Delete("/opportunities/:id", middleware.AuthAdmin(cfg), opportunityHandler.DeleteOpportunity)
	api.Post("/activation-codes", middleware.AuthAdmin(cfg), opportunityHandler.CreateActivationCodes)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// The Authorizer client is initialized on the first authenticated request
	zlog.Info("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		zlog.Info("Gracefully shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	zlog.Info("Starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", "error", err)
	}

	zlog.Info("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
