package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-healthcare-portal/config"
	deliveryHttp "go-healthcare-portal/internal/delivery/http"
	"go-healthcare-portal/internal/delivery/http/handler"
	"go-healthcare-portal/internal/delivery/http/middleware"
	domainRepo "go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/infrastructure/cache"
	"go-healthcare-portal/internal/infrastructure/database"
	"go-healthcare-portal/internal/repository"
	"go-healthcare-portal/internal/repository/memory"
	"go-healthcare-portal/internal/seed"
	"go-healthcare-portal/internal/service"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/internal/worker"
	"go-healthcare-portal/pkg/jwt"
	"go-healthcare-portal/pkg/metrics"
	"go-healthcare-portal/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	metricsNamespace  = "healthcare_portal"
	tokenStoreCleanup = 10 * time.Minute
	shutdownTimeout   = 10 * time.Second
	connectTimeout    = 5 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	runtime      *runtime
	cancelWorker context.CancelFunc
}

// Repositories is the storage the portal runs on, either in memory or postgres.
type Repositories struct {
	Users         domainRepo.UserRepository
	Preferences   domainRepo.NotificationPreferenceRepository
	Appointments  domainRepo.AppointmentRepository
	Messages      domainRepo.MessageRepository
	HealthMetrics domainRepo.HealthMetricRepository
	Medications   domainRepo.MedicationRepository
	Notifications domainRepo.NotificationRepository
	AuditLogs     domainRepo.AuditLogRepository
}

// runtime holds the background pieces that need stopping on shutdown.
type runtime struct {
	router    *deliveryHttp.Router
	slotGuard *service.SlotGuard
	hub       *service.ChatHub
	replier   *service.AutoReplier
	reminder  *worker.MedicationReminderWorker
}

func (rt *runtime) stop() {
	rt.replier.Stop()
	rt.reminder.Stop()
	rt.slotGuard.Stop()
	rt.hub.Close()
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
	log, err := setupLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}
	app.Log = log
	log.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	repos, err := app.openStore(ctx, cfg, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	tokenStore := service.NewMemoryTokenStore(tokenStoreCleanup)
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		tokenStore = service.NewRedisTokenStore(redisClient, log)
		log.Info("Redis connected successfully")
	} else {
		log.Info("REDIS_HOST not set, keeping tokens in process")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app.runtime = wire(cfg, log, repos, tokenStore, app.RedisClient, registry)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           app.runtime.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) (*logrus.Logger, error) {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	log.SetLevel(parsed)
	return log, nil
}

func (app *App) openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Repositories, error) {
	ds, err := seed.Build(cfg.Seed.DemoPassword, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build seed data: %w", err)
	}

	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Info("Using in-memory store seeded with demo data")
		return MemoryRepositories(memory.NewSeededStore(ds)), nil
	}

	gormLevel := logger.Warn
	if cfg.App.Env == "development" {
		gormLevel = logger.Info
	}
	db, err := database.NewPostgresConnection(cfg.DB, gormLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	seeded, err := database.SeedIfEmpty(ctx, db, ds, log)
	if err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	if seeded {
		log.Info("Database seeded with demo data")
	}

	return PostgresRepositories(db), nil
}

func MemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Users:         memory.NewUserRepository(store),
		Preferences:   memory.NewNotificationPreferenceRepository(store),
		Appointments:  memory.NewAppointmentRepository(store),
		Messages:      memory.NewMessageRepository(store),
		HealthMetrics: memory.NewHealthMetricRepository(store),
		Medications:   memory.NewMedicationRepository(store),
		Notifications: memory.NewNotificationRepository(store),
		AuditLogs:     memory.NewAuditLogRepository(store),
	}
}

func PostgresRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         repository.NewUserRepository(db),
		Preferences:   repository.NewNotificationPreferenceRepository(db),
		Appointments:  repository.NewAppointmentRepository(db),
		Messages:      repository.NewMessageRepository(db),
		HealthMetrics: repository.NewHealthMetricRepository(db),
		Medications:   repository.NewMedicationRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		AuditLogs:     repository.NewAuditLogRepository(db),
	}
}

// wire builds every layer on top of the given storage. redisClient may be nil.
func wire(
	cfg *config.Config,
	log *logrus.Logger,
	repos *Repositories,
	tokenStore service.TokenStore,
	redisClient *redis.Client,
	registry *prometheus.Registry,
) *runtime {
	m := metrics.New(metricsNamespace, registry)

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Services
	auditService := service.NewAuditService(log, repos.AuditLogs)
	slotGuard := service.NewSlotGuard(redisClient, log)
	hub := service.NewChatHub(log)
	replier := service.NewAutoReplier(cfg.Chat.AutoReplyDelay, cfg.Chat.AutoReplyText, repos.Messages, hub, m, log)
	reminder := worker.NewMedicationReminderWorker(repos.Medications, repos.Preferences, repos.Notifications, m, log, cfg.Reminder.Interval)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(log, repos.Users, repos.Preferences, jwtService, tokenStore, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, repos.Appointments, repos.Users, repos.Preferences, repos.Notifications, slotGuard, auditService, m)
	messageUsecase := usecase.NewMessageUsecase(log, repos.Messages, repos.Users, repos.Appointments, hub, replier, m)
	analyticsUsecase := usecase.NewAnalyticsUsecase(log, repos.HealthMetrics, auditService)
	medicationUsecase := usecase.NewMedicationUsecase(log, repos.Medications, auditService)
	notificationUsecase := usecase.NewNotificationUsecase(log, repos.Notifications)
	profileUsecase := usecase.NewProfileUsecase(log, repos.Users, repos.Preferences, repos.AuditLogs, tokenStore, auditService)
	directoryUsecase := usecase.NewDirectoryUsecase(log, repos.Users)
	dashboardUsecase := usecase.NewDashboardUsecase(log, repos.Users, repos.Appointments, repos.Messages, repos.Notifications, medicationUsecase, analyticsUsecase)

	// Handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(directoryUsecase),
		Dashboard:    handler.NewDashboardHandler(dashboardUsecase),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Message:      handler.NewMessageHandler(messageUsecase, customValidator, m, log),
		HealthMetric: handler.NewHealthMetricHandler(analyticsUsecase, customValidator, log),
		Medication:   handler.NewMedicationHandler(medicationUsecase),
		Notification: handler.NewNotificationHandler(notificationUsecase, customValidator),
		Profile:      handler.NewProfileHandler(profileUsecase, customValidator),
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, rateLimiter, m, registry, log)

	return &runtime{
		router:    router,
		slotGuard: slotGuard,
		hub:       hub,
		replier:   replier,
		reminder:  reminder,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	workerCtx, cancel := context.WithCancel(context.Background())
	app.cancelWorker = cancel
	app.runtime.reminder.Start(workerCtx)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s, store: %s", app.Config.App.Env, app.Config.Store.Driver)
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

	// Streams are hijacked connections, closing the hub ends them.
	if app.runtime != nil {
		app.runtime.hub.Close()
	}

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background work and closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.cancelWorker != nil {
		app.cancelWorker()
	}
	if app.runtime != nil {
		app.runtime.stop()
	}

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
