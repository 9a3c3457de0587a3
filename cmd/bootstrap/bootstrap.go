package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graphene-trace-portal/config"
	deliveryHttp "graphene-trace-portal/internal/delivery/http"
	"graphene-trace-portal/internal/delivery/http/handler"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/infrastructure/cache"
	"graphene-trace-portal/internal/infrastructure/database"
	"graphene-trace-portal/internal/repository"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/jwt"
	"graphene-trace-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.Log)
	app.Log = log
	log.Info("Configuration loaded successfully")
	config.WatchLogLevel(log)

	// Initialize database
	db, err := database.NewConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB, db, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, log, db, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(config.ParseLogLevel(cfg.Level))
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	userDomainRepo := repository.NewUserDomainRepository()
	settingsRepo := repository.NewSettingsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	sessionService := service.NewSessionService(jwtService, redisClient, log)
	flashService := service.NewFlashService(redisClient, log)
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Seed roles and the administrator; the portal still starts when this fails
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := usecase.NewSeedUsecase(db, log, cfg.Seed, userRepo, roleRepo).Seed(seedCtx); err != nil {
		log.Errorf("Failed to seed initial data: %v", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, sessionService, auditService)
	roleUsecase := usecase.NewRoleUsecase(db, log, userRepo, roleRepo, userDomainRepo, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, roleRepo, assignmentRepo, userDomainRepo, sessionService, flashService, auditService)
	assignmentUsecase := usecase.NewAssignmentUsecase(db, log, userRepo, assignmentRepo, auditService)
	reportUsecase := usecase.NewReportUsecase(db, log, userRepo, roleRepo, assignmentRepo)
	settingsUsecase := usecase.NewSettingsUsecase(db, log, settingsRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo, cfg.Audit.ViewLimit)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, cfg.Session)
	dashboardHandler := handler.NewDashboardHandler(authUsecase)
	userHandler := handler.NewUserHandler(userUsecase, roleUsecase, flashService, customValidator)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUsecase, flashService)
	reportHandler := handler.NewReportHandler(reportUsecase)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, authUsecase, customValidator, cfg.Session)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	healthHandler := handler.NewHealthHandler(database.NewReadinessChecker(sqlDB), redisClient)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionService, cfg.Session.CookieName)
	roleMiddleware := middleware.NewRoleMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)
	requestMiddleware := middleware.NewRequestMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		dashboardHandler,
		userHandler,
		assignmentHandler,
		reportHandler,
		settingsHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
		roleMiddleware,
		corsMiddleware,
		requestMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes the database and redis connections
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
