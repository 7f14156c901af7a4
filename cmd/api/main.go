package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renvask/internal/api"
	"renvask/internal/catalog"
	"renvask/internal/config"
	"renvask/internal/database"
	"renvask/internal/domain"
	"renvask/internal/events"
	"renvask/internal/export"
	"renvask/internal/google"
	"renvask/internal/logging"
	"renvask/internal/metrics"
	"renvask/internal/models"
	"renvask/internal/notify"
	"renvask/internal/repository"
	"renvask/internal/schedule"
	"renvask/internal/service"
	"renvask/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	cat, err := loadCatalog(&logger)
	if err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessions := initSessions(cfg, redisClient, &logger)

	gen, err := schedule.NewGenerator(cfg.Booking)
	if err != nil {
		return fmt.Errorf("init slot generator: %w", err)
	}
	availability := schedule.NewCapacityProvider(gen, db, cfg.Booking.Teams)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus()
	syncWorker := initSyncWorker(ctx, cfg, db, redisClient, &logger)

	bookings := service.NewBookingService(db, cat, bus, syncWorker, cfg.Booking.Teams, cfg.Booking.MaxBookingDays, &logger)
	flow := service.NewFlowService(sessions, bookings, cat, availability, gen, cfg.Booking, &logger)
	customers := service.NewCustomerService(db, &logger)
	reviews := service.NewReviewService(db, bus, &logger)

	initNotifier(cfg, bus, &logger)

	exportDir := cfg.Exports.Path
	if exportDir == "" {
		exportDir = "exports"
	}
	exporter := export.NewExporter(exportDir, &logger)

	server := api.NewServer(cfg.API, flow, bookings, customers, reviews, cat, availability, gen, exporter, &logger)

	backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
	go backup.Start(ctx)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, server, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func loadCatalog(logger *zerolog.Logger) (*catalog.Catalog, error) {
	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "configs/catalog.yaml"
	}
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		logger.Error().Err(err).Str("catalog_path", catalogPath).Msg("read catalog")
		return nil, err
	}

	var catalogConfig struct {
		Services []models.Service `yaml:"services"`
		AddOns   []models.AddOn   `yaml:"add_ons"`
	}
	if err := yaml.Unmarshal(data, &catalogConfig); err != nil {
		logger.Error().Err(err).Str("catalog_path", catalogPath).Msg("parse catalog")
		return nil, err
	}

	cat, err := catalog.New(catalogConfig.Services, catalogConfig.AddOns)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	logger.Info().Int("services", len(catalogConfig.Services)).Int("add_ons", len(catalogConfig.AddOns)).Msg("catalog loaded")
	return cat, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSessions prefers redis-backed sessions with an in-memory fallback so
// a redis outage degrades to single-instance sessions instead of an error.
func initSessions(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	ttl := time.Duration(cfg.Booking.SessionTTLSeconds) * time.Second
	memory := repository.NewMemorySessionRepository(ttl)
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverSessionRepository(
		repository.NewRedisSessionRepository(redisClient, ttl),
		memory,
		logger,
	)
}

func initSyncWorker(ctx context.Context, cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *zerolog.Logger) domain.SyncWorker {
	if cfg.Google.GoogleCredentialsFile == "" || cfg.Google.BookingSpreadSheetID == "" {
		logger.Info().Msg("google sheets not configured, sync disabled")
		return nil
	}

	sheets, err := google.NewSheetsService(cfg.Google.GoogleCredentialsFile, cfg.Google.BookingSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	logger.Info().Msg("google sheets connected")

	w := worker.NewSyncWorker(db, sheets, redisClient, worker.DefaultRetryPolicy(), logger)
	go w.Start(ctx)
	return w
}

func initNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Notify.TelegramToken == "" || len(cfg.Notify.ManagerChats) == 0 {
		return
	}

	notifier, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.ManagerChats, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without notifications")
		return
	}
	notifier.Subscribe(bus)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, server *api.Server, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("booking API started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("booking API stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
