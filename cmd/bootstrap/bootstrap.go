package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-appointments-api/config"
	deliveryHttp "medical-appointments-api/internal/delivery/http"
	"medical-appointments-api/internal/delivery/http/handler"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/infrastructure/cache"
	"medical-appointments-api/internal/infrastructure/database"
	"medical-appointments-api/internal/repository"
	"medical-appointments-api/internal/service"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/jwt"
	"medical-appointments-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsPath = "db/migrations"

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

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply pending schema migrations
	if err := database.RunMigrations(db, migrationsPath); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService, err := jwt.NewService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	rescheduleRepo := repository.NewRescheduleRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	doctorCache := service.NewDoctorCache(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, patientRepo, doctorRepo, jwtService, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo, patientRepo, appointmentRepo, doctorCache, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, doctorRepo, auditService)
	rescheduleUsecase := usecase.NewRescheduleUsecase(log, rescheduleRepo, appointmentRepo, auditService)
	feedbackUsecase := usecase.NewFeedbackUsecase(log, feedbackRepo, appointmentRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	rescheduleHandler := handler.NewRescheduleHandler(rescheduleUsecase, customValidator)
	feedbackHandler := handler.NewFeedbackHandler(feedbackUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, patientRepo, doctorRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		rescheduleHandler,
		feedbackHandler,
		authMiddleware,
		corsMiddleware,
		requestIDMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
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
