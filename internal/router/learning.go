package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"timecraft/internal/auth"
	"timecraft/internal/config"
	"timecraft/internal/handler"
	"timecraft/internal/repository"
)

// RegisterLearning wires routes and middleware for the learning service.
func RegisterLearning(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	tokens auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	contentHandler *handler.ContentHandler,
	progressHandler *handler.ProgressHandler,
	gamificationHandler *handler.GamificationHandler,
	eventHandler *handler.EventHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Basic)
	e.GET("/health/detailed", healthHandler.Detailed)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", jwtMiddleware(cfg.JWTSecret), loadUser(jwtService, users, tokens))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	// Catalog routes
	secured.GET("/tracks", contentHandler.ListTracks)
	secured.GET("/tracks/:slug", contentHandler.GetTrack)
	secured.GET("/lessons/:id", contentHandler.GetLesson)

	// Progress routes
	secured.POST("/lessons/:id/start", progressHandler.StartLesson)
	secured.POST("/steps/:id/complete", progressHandler.CompleteStep)
	secured.GET("/progress/resume", progressHandler.Resume)

	// Gamification routes
	secured.GET("/profile", gamificationHandler.Profile)
	secured.GET("/profile/transactions", gamificationHandler.Transactions)
	secured.GET("/profile/badges", gamificationHandler.UserBadges)
	secured.GET("/badges", gamificationHandler.BadgeCatalog)
	secured.GET("/leaderboard", gamificationHandler.Leaderboard)

	// Activity event routes
	secured.POST("/events", eventHandler.Record)
	secured.GET("/events/counts", eventHandler.Counts)
}
