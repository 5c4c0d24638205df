// Package cli implements the appealctl command tree. Commands run the
// engine in-process; no API server is required.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roadpenalty/appealcore/internal/application/appeal"
	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/conversation"
	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/prediction"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// rootOptions holds global flags shared by all subcommands.
type rootOptions struct {
	configPath string
	jsonOutput bool
}

// NewRootCommand assembles the appealctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "appealctl",
		Short:         "Road penalty appeal engine",
		Long:          "appealctl drives the penalty appeal engine from the terminal: interview a case, score it, browse legal grounds and recalibrate scoring weights.",
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "emit JSON instead of text")

	root.AddCommand(newChatCommand(opts))
	root.AddCommand(newPredictCommand(opts))
	root.AddCommand(newGroundsCommand(opts))
	root.AddCommand(newCalibrateCommand(opts))
	return root
}

// Execute runs the root command. Suitable for a main().
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig resolves the effective configuration for a command.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

// buildPredictor assembles the in-process scoring stack.
func buildPredictor() (*grounds.Catalog, *prediction.Store, *prediction.Engine) {
	catalog := grounds.Default()
	store := prediction.NewStore(nil)
	return catalog, store, prediction.NewEngine(catalog, store)
}

// buildChatService wires a conversation service over an in-memory store.
func buildChatService() *appeal.Service {
	catalog, _, predictor := buildPredictor()
	engine := conversation.NewEngine(predictor, nil, nil)
	return appeal.NewService(appeal.NewMemStore(), engine, predictor, catalog, appeal.Options{}, nil)
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
