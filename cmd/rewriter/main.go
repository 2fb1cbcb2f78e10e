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
	"timecraft/internal/llm"
	"timecraft/internal/model"
	"timecraft/internal/repository"
	"timecraft/internal/router"
	"timecraft/internal/service"
)

// @title Timecraft Rewriter API
// @version 1.0
// @description Legal time-entry narrative rewriter with client billing rules, version history and JWT authentication.
// @host localhost:8080
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
			&model.BatchOperation{},
			&model.Template{},
			&model.AuditEvent{},
			&model.RewriteVersion{},
			&model.RewriteRecord{},
			&model.TimeEntry{},
			&model.UserClientPermission{},
			&model.Client{},
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
		&model.Client{},
		&model.UserClientPermission{},
		&model.TimeEntry{},
		&model.RewriteRecord{},
		&model.RewriteVersion{},
		&model.AuditEvent{},
		&model.Template{},
		&model.BatchOperation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)
	templateRepo := repository.NewTemplateRepository(gormDB)
	batchRepo := repository.NewBatchRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	rewriter := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	clientService := service.NewClientService(clientRepo, userRepo)
	rewriteService := service.NewRewriteService(entryRepo, clientRepo, auditRepo, clientService, rewriter)
	historyService := service.NewHistoryService(entryRepo, clientService)
	templateService := service.NewTemplateService(templateRepo, clientService)
	bulkService := service.NewBulkService(batchRepo, entryRepo, userRepo, clientRepo, rewriteService, clientService)
	analyticsService := service.NewAnalyticsService(statsRepo, clientRepo, cacheClient)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, clientRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	rewriteHandler := handler.NewRewriteHandler(rewriteService)
	historyHandler := handler.NewHistoryHandler(historyService, templateService)
	bulkHandler := handler.NewBulkHandler(bulkService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, auditService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(gormDB, rewriter)

	// Register routes
	router.RegisterRewriter(
		e,
		cfg,
		jwtService,
		userRepo,
		tokenStore,
		authHandler,
		clientHandler,
		rewriteHandler,
		historyHandler,
		bulkHandler,
		analyticsHandler,
		userHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
