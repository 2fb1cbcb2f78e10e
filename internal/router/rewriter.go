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

// RegisterRewriter wires routes and middleware for the rewriter service.
func RegisterRewriter(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	tokens auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	rewriteHandler *handler.RewriteHandler,
	historyHandler *handler.HistoryHandler,
	bulkHandler *handler.BulkHandler,
	analyticsHandler *handler.AnalyticsHandler,
	userHandler *handler.UserHandler,
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

	// Client routes
	secured.GET("/clients", clientHandler.List)

	// Rewrite routes
	secured.POST("/rewrite", rewriteHandler.Rewrite)
	secured.POST("/rewrite-and-save", rewriteHandler.RewriteAndSave)
	secured.GET("/entries", rewriteHandler.ListRecent)
	secured.POST("/rewrites/:id/feedback", rewriteHandler.TagFeedback)

	// Version history routes
	secured.GET("/entries/:id/versions", historyHandler.ListVersions)
	secured.POST("/entries/:id/versions/:versionId/restore", historyHandler.RestoreVersion)

	// Template routes
	secured.POST("/templates", historyHandler.CreateTemplate)
	secured.GET("/templates", historyHandler.ListTemplates)
	secured.GET("/templates/:id", historyHandler.GetTemplate)
	secured.PUT("/templates/:id", historyHandler.UpdateTemplate)
	secured.DELETE("/templates/:id", historyHandler.DeleteTemplate)
	secured.POST("/templates/:id/use", historyHandler.UseTemplate)

	// Bulk routes
	secured.POST("/bulk/import", bulkHandler.Import)
	secured.GET("/bulk/export", bulkHandler.Export)
	secured.GET("/bulk/batches", bulkHandler.ListBatches)
	secured.GET("/bulk/batches/:id", bulkHandler.GetBatch)

	// Analytics routes
	secured.GET("/analytics/dashboard", analyticsHandler.Dashboard)

	// Admin routes
	admin := secured.Group("/admin", adminOnly())

	admin.GET("/clients", clientHandler.AdminList)
	admin.POST("/clients", clientHandler.Create)
	admin.GET("/clients/:id", clientHandler.Get)
	admin.PUT("/clients/:id", clientHandler.Update)
	admin.DELETE("/clients/:id", clientHandler.Delete)
	admin.POST("/clients/:id/guidelines-pdf", clientHandler.UploadGuidelinesPDF)
	admin.POST("/clients/:id/successful-examples-pdf", clientHandler.UploadSuccessfulExamplesPDF)
	admin.POST("/clients/:id/failed-examples-pdf", clientHandler.UploadFailedExamplesPDF)

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/users/:id/reset-password", userHandler.ResetPassword)
	admin.POST("/users/:id/permissions", userHandler.GrantPermission)
	admin.PUT("/users/:id/permissions", userHandler.SetPermissions)
	admin.DELETE("/users/:id/permissions/:clientId", userHandler.RevokePermission)

	admin.GET("/audits", analyticsHandler.ListAudits)
}
