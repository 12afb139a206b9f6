package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gigflow_backend/database"
	"gigflow_backend/internal/config"
	"gigflow_backend/internal/handlers"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/middleware"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/routes"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/validator"
	"gigflow_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine with all dependencies wired. Split
// out of Run so tests can assemble the router without starting a listener.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(sqlDB)
	gigRepo := repositories.NewGigRepository(sqlDB)
	bidRepo := repositories.NewBidRepository(sqlDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	// WebSocket manager doubles as the realtime notifier
	wsManager := ws.NewManager()
	go wsManager.Run()

	// Services
	authService := services.NewAuthService(userRepo)
	gigService := services.NewGigService(gigRepo)
	notificationService := services.NewNotificationService(notificationRepo, wsManager)
	bidService := services.NewBidService(bidRepo, gigRepo, notificationService)

	// Handlers
	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, authService),
		GigHandler:          handlers.NewGigHandler(baseHandler, gigService),
		BidHandler:          handlers.NewBidHandler(baseHandler, bidService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, notificationService),
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestLogger())

	routes.RegisterRoutes(ginRouter, appHandlers, ws.NewHandler(wsManager))

	return ginRouter
}
