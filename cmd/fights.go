package cmd

import (
	"fmt"

	"github.com/fightlytics/cageharvest/internal/logging"
	"github.com/spf13/cobra"
)

// newFightsCmd creates the 'fights' subcommand, which runs the
// events → bouts → per-fighter-stats pipeline.
func newFightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fights",
		Short: "Harvest completed events, their bouts, and per-bout fighter stats",
		Long: `Enumerates every completed event on the statistics listing page, fetches
each event page for its bout rows, then fetches each bout's detail page
for the two fighters' round totals. New rows are appended to
contests.csv and contest_stats.csv; rows already present are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := buildHarvester()
			if err != nil {
				return err
			}
			if err := h.HarvestFights(cmd.Context()); err != nil {
				return fmt.Errorf("harvest fights: %w", err)
			}
			logging.L.Info("Fights harvest finished.")
			return nil
		},
	}
}
