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

	"github.com/go-api-vendor/internal/config"
	"github.com/go-api-vendor/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-api-vendor/internal/infrastructure/jwt"
	"github.com/go-api-vendor/internal/infrastructure/memory"
	"github.com/go-api-vendor/internal/infrastructure/pdf"
	s3infra "github.com/go-api-vendor/internal/infrastructure/s3"
	"github.com/go-api-vendor/internal/infrastructure/smtp"
	"github.com/go-api-vendor/internal/infrastructure/sns"
	"github.com/go-api-vendor/internal/metrics"
	transporthttp "github.com/go-api-vendor/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.AppEnv == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tokens, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		if cfg.IsProduction() {
			return fmt.Errorf("jwt provider: %w", err)
		}
		logger.Warn("JWT keys not available, using an ephemeral key pair; tokens will not survive a restart", "err", err)
		if tokens, err = jwtinfra.NewEphemeralProvider(); err != nil {
			return fmt.Errorf("ephemeral jwt provider: %w", err)
		}
	}
	deps.Tokens = tokens

	// Document events are optional.
	if cfg.DocumentEventsTopicARN != "" {
		pub, err := sns.NewPublisher(ctx, cfg, cfg.DocumentEventsTopicARN)
		if err != nil {
			logger.Warn("SNS publisher not available", "err", err)
		} else {
			deps.Events = pub
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewCollector(reg)
	deps.MetricsHandler = metrics.Handler(reg)
	deps.PDF = pdf.NewRenderer()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// buildStores wires persistence, blob storage and mail for the configured driver.
func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*transporthttp.Deps, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store; data is lost on restart and OTP emails are only logged")
		return &transporthttp.Deps{
			UserRepo:     memory.NewUserRepo(),
			SessionRepo:  memory.NewSessionRepo(),
			OTPRepo:      memory.NewOTPRepo(),
			DocumentRepo: memory.NewDocumentRepo(),
			WalletRepo:   memory.NewWalletRepo(),
			Objects:      memory.NewBlobStore(),
			Mailer:       smtp.NewLogMailer(logger),
		}, nil
	}

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	// Creates the tables if they don't exist.
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	mailer, err := smtp.NewMailer(cfg)
	if err != nil {
		return nil, fmt.Errorf("smtp mailer: %w", err)
	}

	return &transporthttp.Deps{
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:  dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		OTPRepo:      dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPs),
		DocumentRepo: dynamo.NewDocumentRepo(dynamoClient, cfg.DynamoTables.Documents),
		WalletRepo:   dynamo.NewWalletRepo(dynamoClient, cfg.DynamoTables.Wallets),
		Objects:      s3infra.NewStore(s3Client, cfg.S3BucketName),
		Mailer:       mailer,
	}, nil
}
