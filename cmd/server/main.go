package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkova/foodgram-backend/config"
	"github.com/avolkova/foodgram-backend/internal/app/controller"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/avolkova/foodgram-backend/internal/render"
	"github.com/avolkova/foodgram-backend/internal/router"
	"github.com/avolkova/foodgram-backend/internal/scheduler"
	"github.com/avolkova/foodgram-backend/internal/storage"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"github.com/avolkova/foodgram-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Foodgram Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// The PDF font must be present before the server takes traffic: every
	// shopping list download depends on it.
	pdfRenderer, err := render.NewPDFRenderer(cfg.PDF.FontPath)
	if err != nil {
		logger.Fatal("Failed to load PDF font", err)
	}
	xlsxRenderer := render.NewXLSXRenderer()

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it, logout cannot revoke tokens early.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	followRepo := repository.NewFollowRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	resetService := service.NewPasswordResetService(resetRepo, userRepo)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, tagRepo)
	cartService := service.NewCartService(cartRepo, recipeRepo)
	shoppingListService := service.NewShoppingListService(cartRepo, recipeRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	imageStorage := storage.NewImageStorage(&cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService, resetService)
	tagController := controller.NewTagController(tagService)
	ingredientController := controller.NewIngredientController(ingredientService)
	recipeController := controller.NewRecipeController(recipeService)
	cartController := controller.NewCartController(cartService, shoppingListService, pdfRenderer, xlsxRenderer)
	favoriteController := controller.NewFavoriteController(favoriteService)
	followController := controller.NewFollowController(followService)
	uploadController := controller.NewUploadController(imageStorage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the nightly cleanup of expired reset tokens
	cleanupScheduler := scheduler.NewCleanupScheduler(resetService)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Error("Failed to start cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		tagController,
		ingredientController,
		recipeController,
		cartController,
		favoriteController,
		followController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
