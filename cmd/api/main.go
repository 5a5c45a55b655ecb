package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/profile-screener/internal/bootstrap"
	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/handlers"
	"alfredoptarigan/profile-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize object storage
	store, closeStore, err := bootstrap.NewObjectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize profile storage: %v", err)
	}
	defer closeStore()

	defaultPolicy, err := services.ParseEmptyStorePolicy(cfg.Analyzer.EmptyStorePolicy)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Progress events
	notifier, stopNotifier := bootstrap.NewProgressNotifier(cfg)

	// Initialize analyzer
	analyzer, err := bootstrap.NewBatchAnalyzer(ctx, cfg, notifier)
	if err != nil {
		log.Fatalf("❌ Failed to initialize analyzer: %v", err)
	}
	log.Println("✅ Analyzer initialized successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		store,
		services.NewPDFInspector(),
		cfg.Storage.MaxFileSize,
		cfg.Storage.MaxUploadFiles,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, store, defaultPolicy)
	profileHandler := handlers.NewProfileHandler(store)
	log.Println("✅ Handlers initialized")

	app := NewApp(cfg, uploadHandler, analyzeHandler, profileHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		stopNotifier()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(
	cfg *config.Config,
	uploadHandler *handlers.UploadHandler,
	analyzeHandler *handlers.AnalyzeHandler,
	profileHandler *handlers.ProfileHandler,
) *fiber.App {
	bodyLimit := cfg.Storage.MaxFileSize * int64(max(cfg.Storage.MaxUploadFiles, 1))

	app := fiber.New(fiber.Config{
		AppName:      "Profile Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    int(bodyLimit) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload-profiles", uploadHandler.HandleUpload)
	api.Get("/profiles", profileHandler.HandleList)
	api.Delete("/profiles/:filename", profileHandler.HandleDelete)
	api.Post("/analyze-profiles", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Profile Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/upload-profiles",
				"GET /api/v1/profiles",
				"DELETE /api/v1/profiles/:filename",
				"POST /api/v1/analyze-profiles",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
