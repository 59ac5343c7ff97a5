package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cafeteria/cmd"
	"cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := getConfigs()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err = configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err = run(configs); err != nil {
		log.Fatalf("%v", err)
	}
}

// run returns only after every deferred cleanup has finished, so main can
// exit on the error without skipping them.
func run(configs cmd.Config) error {
	logger := logging.New(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if configs.Storage == cmd.StoragePostgres {
		var err error
		if db, err = openDatabase(ctx, configs); err != nil {
			return err
		}
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to release resources", "error", closeErr)
		}
	}()

	e, err := app.CreateHTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to build HTTP server: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "port", configs.HTTPPort, "storage", configs.Storage)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	return nil
}

func openDatabase(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = postgres.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func getConfigs() (cmd.Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load(".env")

	batchTimeout, timeoutErr := time.ParseDuration(envOr("KAFKA_BATCH_TIMEOUT", "10ms"))
	if timeoutErr != nil {
		timeoutErr = fmt.Errorf("KAFKA_BATCH_TIMEOUT: %w", timeoutErr)
	}
	async, asyncErr := strconv.ParseBool(envOr("KAFKA_ASYNC", "true"))
	if asyncErr != nil {
		asyncErr = fmt.Errorf("KAFKA_ASYNC: %w", asyncErr)
	}

	return cmd.Config{
		HTTPPort:                envOr("HTTP_PORT", "8080"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaNotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
		KafkaBatchTimeout:       batchTimeout,
		KafkaAsync:              async,
		LogLevel:                envOr("LOG_LEVEL", "info"),
		SalesReportSchedule:     os.Getenv("SALES_REPORT_SCHEDULE"),
		Storage:                 envOr("STORAGE", cmd.StoragePostgres),
	}, errors.Join(timeoutErr, asyncErr)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
