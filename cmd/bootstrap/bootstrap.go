package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediquick-api/config"
	deliveryHttp "mediquick-api/internal/delivery/http"
	"mediquick-api/internal/delivery/http/handler"
	"mediquick-api/internal/delivery/http/middleware"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/infrastructure/cache"
	"mediquick-api/internal/infrastructure/database"
	"mediquick-api/internal/repository"
	"mediquick-api/internal/service"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/jwt"
	"mediquick-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	connectTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Scheduler   *service.Scheduler
	ViewCounter *service.ViewCounterService
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
	app.Log = NewLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := ConnectDatabase(cfg, app.Log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	if err := app.initialize(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// NewLogger builds the JSON logger shared by every component.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// ConnectDatabase applies pending migrations and opens the connection pool.
func ConnectDatabase(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	if err := database.Migrate(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, database.GormLogLevel(cfg.App.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected successfully")

	return db, nil
}

func (app *App) initialize() error {
	cfg, db, log := app.Config, app.DB, app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator(validator.WithEnums(entity.ValidationEnums()))

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	labTestRepo := repository.NewLabTestRepository()
	medicineRepo := repository.NewMedicineRepository()
	consultationRepo := repository.NewConsultationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	app.ViewCounter = service.NewViewCounterService(db, app.RedisClient, log, labTestRepo)
	queryCache := cache.NewQueryCache(cfg.Cache.QueryTTL)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(db, log, customValidator, doctorRepo, auditService)
	labTestUsecase := usecase.NewLabTestUsecase(db, log, customValidator, labTestRepo, auditService, queryCache, app.ViewCounter)
	medicineUsecase := usecase.NewMedicineUsecase(db, log, customValidator, medicineRepo, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, customValidator, consultationRepo, doctorRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	scheduler, err := service.NewScheduler(log, cfg.Jobs, consultationUsecase, app.ViewCounter)
	if err != nil {
		return fmt.Errorf("failed to configure scheduler: %w", err)
	}
	app.Scheduler = scheduler

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	labTestHandler := handler.NewLabTestHandler(labTestUsecase, customValidator)
	medicineHandler := handler.NewMedicineHandler(medicineUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	healthHandler := handler.NewHealthHandler(log,
		handler.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		}},
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware("mediquick")
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.RateLimit.RPS),
		Burst: cfg.RateLimit.Burst,
	})

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler,
		labTestHandler,
		medicineHandler,
		consultationHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
		corsMiddleware,
		loggerMiddleware,
		metricsMiddleware,
		rateLimiter,
	)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Scheduler.Start()

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

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Scheduler.Stop(ctx)

	// Persist views buffered since the last scheduled flush
	if n, err := app.ViewCounter.Flush(ctx); err != nil {
		app.Log.Errorf("Failed to flush view counts: %v", err)
	} else {
		app.Log.Infof("Flushed view counts for %d lab tests", n)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
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
