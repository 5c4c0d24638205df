// The worker runs the periodic weight-calibration batch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roadpenalty/appealcore/internal/application/calibration"
	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/infrastructure/database/postgres"
	"github.com/roadpenalty/appealcore/internal/infrastructure/messaging/kafka"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/metrics"
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
	logger.Info("starting calibration worker",
		logging.Duration("interval", cfg.Calibration.Interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("database unavailable", logging.Err(err))
	}
	defer pool.Close()
	if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
		logger.Fatal("migrations failed", logging.Err(err))
	}

	var events calibration.EventPublisher
	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(cfg.Kafka, "worker", logger)
		defer publisher.Close()
		events = publisher
	}

	weights := prediction.NewStore(nil)
	engine := prediction.NewEngine(grounds.Default(), weights)
	calibrator := prediction.NewCalibrator(engine,
		cfg.Calibration.AccuracyThreshold, cfg.Calibration.NudgeFactor, cfg.Calibration.MinSamples)
	svc := calibration.NewService(postgres.NewOutcomeRepo(pool, logger), calibrator, weights,
		events, metrics.New("appealcore_worker"), logger)

	if err := svc.RunPeriodically(ctx, cfg.Calibration.Interval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
