package cmd

import (
	"fmt"

	"github.com/fightlytics/cageharvest/internal/logging"
	"github.com/spf13/cobra"
)

// newFightersCmd creates the 'fighters' subcommand, which harvests fighter
// profiles across the alphabetic listing partition.
func newFightersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fighters",
		Short: "Harvest fighter profiles into fighters.csv",
		Long: `Enumerates fighter ids across the 26 alphabetic listing pages, drops ids
already present in fighters.csv, then fetches each remaining profile page
for biometric and career-average statistics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := buildHarvester()
			if err != nil {
				return err
			}
			if err := h.HarvestFighters(cmd.Context()); err != nil {
				return fmt.Errorf("harvest fighters: %w", err)
			}
			logging.L.Info("Fighters harvest finished.")
			return nil
		},
	}
}
