package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credit-application-system/internal/api"
	"credit-application-system/internal/api/middleware"
	"credit-application-system/internal/batch"
	"credit-application-system/internal/config"
	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/event"
	"credit-application-system/internal/infrastructure/database/postgres"
	"credit-application-system/internal/infrastructure/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const (
	rabbitMQMaxAttempts = 5
	shutdownTimeout     = 15 * time.Second
)

// rabbitMQBackoff is the wait before the given retry attempt.
var rabbitMQBackoff = func(attempt int) time.Duration {
	return time.Duration(attempt*2) * time.Second
}

// resources are the long-lived clients released on shutdown.
type resources struct {
	cron        *cron.Cron
	rabbitConn  *amqp.Connection
	publisher   *event.RabbitMQEventPublisher
	redisClient *redis.Client
	rateLimiter *middleware.RateLimiterMiddleware
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the portfolio snapshot job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts.configPath, migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, configPath string, migrateFirst bool) error {
	cfg, logger, err := initializeApp(configPath)
	if err != nil {
		return err
	}

	dbPool, err := initializeDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbPool, logger)

	if migrateFirst {
		if _, err := postgres.Migrate(ctx, dbPool, logger); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	redisClient, err := initializeRedisClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	rabbitConn := setupRabbitMQ(cfg, logger)
	publisher := initializePublisher(rabbitConn, cfg, logger)

	services, creditRepo := initializeServices(dbPool, publisher, logger)
	res := resources{
		rabbitConn:  rabbitConn,
		redisClient: redisClient,
		rateLimiter: middleware.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger),
	}
	if p, ok := publisher.(*event.RabbitMQEventPublisher); ok {
		res.publisher = p
	}
	res.cron = startBatchJobs(cfg, batch.NewPortfolioSnapshotJob(creditRepo, logger), logger)

	router := api.SetupRouter(res.rateLimiter, services, cfg, logger)
	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	return handleShutdown(srv, res, shutdownChan, serverErrors, logger)
}

func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", cfg.Source())

	return cfg, logger, nil
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.Info("Opening database pool")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return dbPool, nil
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	dbPool.Close()
	logger.Info("Database pool closed")
}

func initializeServices(dbPool postgres.DBPool, publisher event.Publisher, logger *slog.Logger) (api.Services, credit.PortfolioRepository) {
	logger.Info("Wiring repositories and services")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	creditRepo := postgres.NewCreditRepository(dbPool, logger)

	customerService := customer.NewCustomerService(customerRepo, publisher, logger)
	creditService := credit.NewCreditService(creditRepo, customerService, publisher, logger)

	return api.Services{Customers: customerService, Credits: creditService}, creditRepo
}

// initializeRedisClient returns nil when no address is configured; rate
// limiting then stays in-process.
func initializeRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address not configured, rate limits are kept per instance.")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	logger.Info("Redis client connected.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb, nil
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}
	uri := amqp.URI{
		Scheme:   "amqp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    "/",
	}
	if uri.Port == 0 {
		uri.Port = 5672
	}
	return uri.String(), nil
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for attempt := 1; attempt <= rabbitMQMaxAttempts; attempt++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")
			go watchRabbitMQ(conn, logger)
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", rabbitMQMaxAttempts),
			slog.Any("error", err),
		)
		time.Sleep(rabbitMQBackoff(attempt))
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", rabbitMQMaxAttempts, err)
}

func watchRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case b, ok := <-blockChan:
			if !ok {
				return
			}
			if b.Active {
				logger.Warn("RabbitMQ connection blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ connection unblocked")
			}
		case e, ok := <-closeChan:
			if ok && e != nil {
				logger.Error("RabbitMQ connection closed", slog.Any("error", e))
			}
			return
		}
	}
}

// setupRabbitMQ returns nil when events are disabled or the broker cannot be
// reached; the services then run without publishing.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, domain events will not be published.")
		return nil
	}

	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		logger.Error("Invalid RabbitMQ configuration", "error", err)
		return nil
	}

	conn, err := connectRabbitMQ(uri, logger)
	if err != nil {
		logger.Error("Continuing without RabbitMQ", "error", err)
		return nil
	}
	return conn
}

func initializePublisher(conn *amqp.Connection, cfg *config.Config, logger *slog.Logger) event.Publisher {
	if conn == nil {
		return nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher", "error", err)
		return nil
	}
	return publisher
}

func startBatchJobs(cfg *config.Config, snapshotJob *batch.PortfolioSnapshotJob, logger *slog.Logger) *cron.Cron {
	c := cron.New()

	jobID, err := snapshotJob.Register(c, cfg.Batch.PortfolioSnapshotSchedule, cfg.Batch.PortfolioSnapshotTimeout)
	if err != nil {
		logger.Error("Failed to schedule portfolio snapshot job", "schedule", cfg.Batch.PortfolioSnapshotSchedule, slog.Any("error", err))
	} else {
		logger.Info("Scheduled portfolio snapshot job", "schedule", cfg.Batch.PortfolioSnapshotSchedule, "job_id", jobID)
	}

	c.Start()
	logger.Info("Batch scheduler running", "jobs", len(c.Entries()))
	return c
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, chan os.Signal) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			logger.Info("HTTP server stopped accepting connections")
			err = nil
		}
		serverErrors <- err
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, res resources, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) error {

	var runErr error
	select {
	case sig := <-shutdownChan:
		logger.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly", "error", err)
			runErr = fmt.Errorf("http server: %w", err)
		}
		serverErrors = nil
	}

	stopCronScheduler(res.cron, logger)
	if res.rateLimiter != nil {
		res.rateLimiter.Close()
	}
	if res.publisher != nil {
		if err := res.publisher.Close(); err != nil {
			logger.Warn("Failed to close publisher channel", "error", err)
		}
	}
	closeRabbitMQConnection(res.rabbitConn, logger)
	closeRedisClient(res.redisClient, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Shutdown complete")
	return runErr
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	if cronScheduler == nil {
		return
	}
	select {
	case <-cronScheduler.Stop().Done():
		logger.Info("Batch scheduler drained")
	case <-time.After(shutdownTimeout):
		logger.Warn("Batch scheduler did not drain in time", "timeout", shutdownTimeout)
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil || rabbitConn.IsClosed() {
		return
	}
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Closing RabbitMQ connection failed", slog.Any("error", err))
	}
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Closing Redis client failed", "error", err)
	}
}

// shutdownHTTPServer drains in-flight requests. serverErrors is nil when the
// serving goroutine has already reported.
func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Draining HTTP server failed, forcing close", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("Forced close of HTTP server failed", "error", err)
		}
	}

	if serverErrors == nil {
		return
	}
	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("HTTP server goroutine did not report after shutdown")
	}
}
