package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadpenalty/appealcore/internal/application/calibration"
	"github.com/roadpenalty/appealcore/internal/infrastructure/database/postgres"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/prediction"
)

func newCalibrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Replay stored appeal outcomes and adjust scoring weights",
		Long:  "Runs one calibration pass over the outcome history in the configured database. Weights are adjusted only when accuracy falls below the configured threshold.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(logging.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.Connect(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			_, store, engine := buildPredictor()
			calibrator := prediction.NewCalibrator(engine,
				cfg.Calibration.AccuracyThreshold,
				cfg.Calibration.NudgeFactor,
				cfg.Calibration.MinSamples)
			svc := calibration.NewService(postgres.NewOutcomeRepo(pool, logger), calibrator, store, nil, nil, logger)

			report, err := svc.RunOnce(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, report)
			}
			fmt.Fprintf(out, "Samples:   %d\n", report.Samples)
			fmt.Fprintf(out, "Accuracy:  %.2f\n", report.Accuracy)
			fmt.Fprintf(out, "Precision: %.2f  Recall: %.2f  F1: %.2f\n", report.Precision, report.Recall, report.F1)
			if report.Adjusted {
				fmt.Fprintf(out, "Weights adjusted: v%d -> v%d\n", report.OldVersion, report.NewVersion)
			} else {
				fmt.Fprintln(out, "Weights unchanged.")
			}
			return nil
		},
	}
}
