// The API server hosts the conversational appeal engine over REST.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roadpenalty/appealcore/internal/application/appeal"
	"github.com/roadpenalty/appealcore/internal/application/calibration"
	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	redisstore "github.com/roadpenalty/appealcore/internal/infrastructure/cache/redis"
	"github.com/roadpenalty/appealcore/internal/infrastructure/database/postgres"
	"github.com/roadpenalty/appealcore/internal/infrastructure/messaging/kafka"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/metrics"
	miniostore "github.com/roadpenalty/appealcore/internal/infrastructure/storage/minio"
	httpapi "github.com/roadpenalty/appealcore/internal/interfaces/http"
	"github.com/roadpenalty/appealcore/internal/prediction"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: using default configuration: %v\n", err)
		cfg = config.Default()
	}

	logger, err := logging.NewLogger(logging.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger.Info("starting appeal api server", logging.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New("appealcore")

	// Scoring stack.
	table := prediction.DefaultTable()
	if cfg.Engine.MatchThreshold > 0 {
		table.MatchThreshold = cfg.Engine.MatchThreshold
	}
	if cfg.Engine.PreviewGrounds > 0 {
		table.TopGrounds = cfg.Engine.PreviewGrounds
	}
	weights := prediction.NewStore(table)
	catalog := grounds.Default()
	predictor := prediction.NewEngine(catalog, weights)
	engine := conversation.NewEngine(predictor, nil, logger)

	// Session store: Redis when enabled, in-process memory otherwise.
	var store appeal.SessionStore = appeal.NewMemStore()
	if cfg.Redis.Enabled {
		client, err := redisstore.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("redis unavailable", logging.Err(err))
		}
		defer client.Close()
		store = redisstore.NewSessionStore(client, cfg.Redis.KeyPrefix, cfg.Redis.SessionTTL, logger)
	}

	opts := appeal.Options{Metrics: m, Renderer: appeal.NewTextRenderer()}

	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(cfg.Kafka, "apiserver", logger)
		defer publisher.Close()
		opts.Events = publisher
	}
	if cfg.MinIO.Enabled {
		docs, err := miniostore.NewDocumentStore(ctx, cfg.MinIO, logger)
		if err != nil {
			logger.Fatal("minio unavailable", logging.Err(err))
		}
		opts.Docs = docs
	}

	// Outcome intake needs the database; the API degrades without it.
	var outcomes httpapi.OutcomeRecorder
	if pool, err := postgres.Connect(ctx, cfg.Database, logger); err != nil {
		logger.Warn("database unavailable, outcome intake disabled", logging.Err(err))
	} else {
		defer pool.Close()
		if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
			logger.Fatal("migrations failed", logging.Err(err))
		}
		repo := postgres.NewOutcomeRepo(pool, logger)
		calibrator := prediction.NewCalibrator(predictor,
			cfg.Calibration.AccuracyThreshold, cfg.Calibration.NudgeFactor, cfg.Calibration.MinSamples)
		outcomes = calibration.NewService(repo, calibrator, weights, opts.Events, m, logger)
	}

	svc := appeal.NewService(store, engine, predictor, catalog, opts, logger)
	router := httpapi.NewRouter(httpapi.NewHandler(svc, outcomes, logger), m, logger)
	server := httpapi.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
		}
	}

	if err := server.Stop(context.Background()); err != nil {
		logger.Error("shutdown incomplete", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
