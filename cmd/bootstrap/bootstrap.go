package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portal-citas-backend/config"
	deliveryHttp "portal-citas-backend/internal/delivery/http"
	"portal-citas-backend/internal/delivery/http/handler"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/infrastructure/cache"
	"portal-citas-backend/internal/infrastructure/database"
	"portal-citas-backend/internal/repository"
	"portal-citas-backend/internal/service"
	"portal-citas-backend/internal/usecase"
	"portal-citas-backend/pkg/jwt"
	"portal-citas-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before accepting traffic
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	formRepo := repository.NewFormRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	rfpRepo := repository.NewRoleFormPermissionRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	typeRepo := repository.NewAppointmentTypeRepository(db)
	hourRepo := repository.NewAvailableHourRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)
	ticketService := service.NewTicketService(redisClient, log)

	// Initialize usecases
	authorizationUsecase := usecase.NewAuthorizationUsecase(log, employeeRepo, formRepo, rfpRepo)
	catalogUsecase := usecase.NewCatalogUsecase(log, formRepo, permissionRepo, roleRepo, rfpRepo, auditService)
	employeeUsecase := usecase.NewEmployeeUsecase(log, employeeRepo, auditService)
	referenceUsecase := usecase.NewReferenceUsecase(log, siteRepo, typeRepo, hourRepo)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, siteRepo, hourRepo, appointmentRepo)
	bookingUsecase := usecase.NewBookingUsecase(log, siteRepo, typeRepo, hourRepo, appointmentRepo, ticketService, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, siteRepo, typeRepo, auditService)
	auditUsecase := usecase.NewAuditUsecase(log, auditRepo)

	// Initialize handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	appointmentHandler := handler.NewAppointmentHandler(bookingUsecase, appointmentUsecase, customValidator)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, customValidator)
	referenceHandler := handler.NewReferenceHandler(referenceUsecase, customValidator)
	employeeHandler := handler.NewEmployeeHandler(employeeUsecase, authorizationUsecase, customValidator)
	auditHandler := handler.NewAuditHandler(auditUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	permissionMiddleware := middleware.NewPermissionMiddleware(authorizationUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		availabilityHandler,
		appointmentHandler,
		catalogHandler,
		referenceHandler,
		employeeHandler,
		auditHandler,
		authMiddleware,
		permissionMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
