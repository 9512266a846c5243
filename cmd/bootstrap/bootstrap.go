package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"immunization-tracker/config"
	"immunization-tracker/internal/catalog"
	deliveryHttp "immunization-tracker/internal/delivery/http"
	"immunization-tracker/internal/delivery/http/handler"
	"immunization-tracker/internal/delivery/http/middleware"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/infrastructure/cache"
	"immunization-tracker/internal/infrastructure/database"
	"immunization-tracker/internal/infrastructure/export"
	"immunization-tracker/internal/infrastructure/sms"
	"immunization-tracker/internal/repository"
	"immunization-tracker/internal/service"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/jwt"
	"immunization-tracker/pkg/validator"

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

// New creates a new App instance with all dependencies initialized. The
// catalog and time zone are checked before any connection is opened.
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg.App.LogLevel)
	app := &App{Config: cfg, Log: log}
	log.Info("Configuration loaded successfully")

	vaccines, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	log.Infof("Vaccine catalog loaded with %d entries", vaccines.Len())

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, log, db, redisClient, vaccines, usecase.NewClock(loc))

	return app, nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// loadCatalog reads CATALOG_PATH, or the bundled catalog when unset. A
// malformed document stops startup.
func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if cfg.Path == "" {
		c, err = catalog.Default()
	} else {
		c, err = catalog.Load(cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vaccine catalog: %w", err)
	}
	return c, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	vaccines *catalog.Catalog,
	clock *usecase.Clock,
) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	sessions := cache.NewSessionStore(redisClient)
	sender := sms.NewTwilioSender(cfg.SMS, log)
	if !sender.Configured() {
		log.Warn("SMS gateway is not configured; reminders and messages are disabled")
	}
	schedule := immunization.KEPI

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	childRepo := repository.NewChildRepository()
	reactionRepo := repository.NewReactionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, sessions)
	childUsecase := usecase.NewChildUsecase(db, log, childRepo, auditService, clock)
	vaccinationUsecase := usecase.NewVaccinationUsecase(db, log, childRepo, auditService, schedule, clock)
	reactionUsecase := usecase.NewReactionUsecase(db, log, childRepo, reactionRepo, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, childRepo, schedule, clock)
	reportUsecase := usecase.NewReportUsecase(db, log, childRepo, schedule, clock, export.NewRenderer)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, childRepo, auditService, sender, schedule, clock)
	catalogUsecase := usecase.NewCatalogUsecase(vaccines)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Child:        handler.NewChildHandler(childUsecase, customValidator),
		Vaccination:  handler.NewVaccinationHandler(vaccinationUsecase, customValidator),
		Reaction:     handler.NewReactionHandler(reactionUsecase, customValidator),
		Dashboard:    handler.NewDashboardHandler(dashboardUsecase),
		Report:       handler.NewReportHandler(reportUsecase, customValidator),
		Notification: handler.NewNotificationHandler(notificationUsecase, customValidator),
		Catalog:      handler.NewCatalogHandler(catalogUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase, customValidator),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessions, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

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

// Close closes all connections (database, redis, etc.)
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
