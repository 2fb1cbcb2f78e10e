package main

import (
	"log"
	"net/http"
	"os"

	_ "timecraft/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"timecraft/internal/auth"
	"timecraft/internal/cache"
	"timecraft/internal/config"
	"timecraft/internal/db"
	"timecraft/internal/handler"
	"timecraft/internal/model"
	"timecraft/internal/repository"
	"timecraft/internal/router"
	"timecraft/internal/service"
)

// @title Timecraft Learning API
// @version 1.0
// @description Interactive learning platform with tracks, lessons, XP, streaks, badges and a Redis leaderboard.
// @host localhost:8081
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.AnalyticsEvent{},
			&model.UserBadge{},
			&model.Badge{},
			&model.XPTransaction{},
			&model.GamificationProfile{},
			&model.StepCompletion{},
			&model.UserProgress{},
			&model.LessonStep{},
			&model.Lesson{},
			&model.CourseModule{},
			&model.Track{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Track{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.LessonStep{},
		&model.UserProgress{},
		&model.StepCompletion{},
		&model.GamificationProfile{},
		&model.XPTransaction{},
		&model.Badge{},
		&model.UserBadge{},
		&model.AnalyticsEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	leaderboard := cache.NewLeaderboard(cacheClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)
	progressRepo := repository.NewProgressRepository(gormDB)
	gamificationRepo := repository.NewGamificationRepository(gormDB)
	analyticsRepo := repository.NewAnalyticsRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	contentService := service.NewContentService(contentRepo)
	gamificationService := service.NewGamificationService(gamificationRepo, leaderboard)
	badgeService := service.NewBadgeService(gamificationRepo, progressRepo, contentRepo)
	progressService := service.NewProgressService(progressRepo, contentRepo, gamificationService, badgeService, analyticsRepo)
	eventService := service.NewEventService(analyticsRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	contentHandler := handler.NewContentHandler(contentService)
	progressHandler := handler.NewProgressHandler(progressService)
	gamificationHandler := handler.NewGamificationHandler(gamificationService, badgeService)
	eventHandler := handler.NewEventHandler(eventService)
	healthHandler := handler.NewHealthHandler(gormDB, nil)

	// Register routes
	router.RegisterLearning(
		e,
		cfg,
		jwtService,
		userRepo,
		tokenStore,
		authHandler,
		contentHandler,
		progressHandler,
		gamificationHandler,
		eventHandler,
		healthHandler,
	)

	addr := ":" + cfg.LearningPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
