// Package cmd defines and implements the CLI commands for the cageharvest executable.
package cmd

import (
	"fmt"

	"github.com/fightlytics/cageharvest/internal/harvest"
	"github.com/fightlytics/cageharvest/internal/logging"
	"github.com/fightlytics/cageharvest/internal/metrics"
	"github.com/fightlytics/cageharvest/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cageharvest",
		Short: "A concurrent harvester for fight and fighter statistics.",
		Long: `cageharvest pulls completed-event, bout, and fighter-profile statistics
from ufcstats.com and appends them to resumable CSV datasets. Runs are
idempotent: rows already present in a dataset are never fetched or
written again, so an interrupted run can simply be restarted.`,
	}

	// Initialize Viper configuration.
	cobra.OnInitialize(config.InitConfig)

	// Define persistent flags.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cageharvest/config.yaml)")

	cmd.AddCommand(newFightsCmd())
	cmd.AddCommand(newFightersCmd())

	return cmd
}

// buildHarvester wires the shared fetcher and pipeline coordinator from the
// loaded configuration. Both subcommands funnel through here so they share
// the same transport and retry policy.
func buildHarvester() (*harvest.Harvester, error) {
	cfg, err := harvest.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load harvest config: %w", err)
	}

	fetcher, err := harvest.NewSiteFetcher(cfg, logging.L)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	// Long harvests can be watched live when a metrics address is set.
	if addr := viper.GetString("harvest.metrics_addr"); addr != "" {
		go metrics.Serve(addr, logging.L)
	}

	return harvest.New(cfg, fetcher, logging.L), nil
}

// Execute is the main entry point.
func Execute() {
	// Initialize the logger once at the very start.
	logging.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
