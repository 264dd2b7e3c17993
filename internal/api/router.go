package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/agriconnect/marketplace-api/internal/api/handler"
	"github.com/agriconnect/marketplace-api/internal/api/middleware"
	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
	"github.com/agriconnect/marketplace-api/internal/core/service"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/ai"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/config"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/db/postgres"
	redisdb "github.com/agriconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/agriconnect/marketplace-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the recommendation cache is skipped in that case.
func NewRouter(db *sql.DB, rdb *redis.Client, images ports.ImageStore, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("agrimarket"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	cropRepo := postgres.NewCropRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	agroplanRepo := postgres.NewAgroplanRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	cropService := service.NewCropService(cropRepo, images, log)
	orderService := service.NewOrderService(orderRepo, cropRepo, userRepo, messageRepo, log)
	userService := service.NewUserService(userRepo, log)
	messageService := service.NewMessageService(messageRepo, userRepo, log)

	var planCache ports.RecommendationCache
	if rdb != nil {
		planCache = redisdb.NewRecommendationCache(rdb)
	}
	recommender := ai.NewClient(cfg.Agroplan.GatewayURL, cfg.Agroplan.APIKey, cfg.Agroplan.Model)
	agroplanService := service.NewAgroplanService(recommender, planCache, agroplanRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	cropHandler := handler.NewCropHandler(cropService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)
	agroplanHandler := handler.NewAgroplanHandler(agroplanService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/crops", cropHandler.List)
	apiGroup.POST("/crops", cropHandler.Create)
	apiGroup.PUT("/crops/:id", cropHandler.Update)
	apiGroup.DELETE("/crops/:id", cropHandler.Delete)

	apiGroup.GET("/users/:id", userHandler.GetProfile)
	apiGroup.GET("/admins", userHandler.ListAdmins)

	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.GET("/orders", orderHandler.List)
	apiGroup.PUT("/orders/:id/approve", orderHandler.Approve, authRequired, adminOnly)

	adminGroup := apiGroup.Group("/admin", authRequired, adminOnly)
	adminGroup.GET("/users", userHandler.ListUsers)
	adminGroup.POST("/users", userHandler.CreateUser)
	adminGroup.PUT("/users/:id", userHandler.UpdateUser)
	adminGroup.DELETE("/users/:id", userHandler.DeleteUser)

	apiGroup.GET("/messages", messageHandler.List)
	apiGroup.POST("/messages", messageHandler.Send)
	apiGroup.PUT("/messages/:id/read", messageHandler.MarkRead)

	apiGroup.POST("/agroplan/analyze", agroplanHandler.Analyze,
		middleware.RateLimit(rate.Limit(1), 5))

	// --- Static uploads ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
