package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/pool"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show matching statistics for the pool",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession("stats")

		if err := writeJSON(cmd.OutOrStdout(), pool.ComputeStats(s.pool)); err != nil {
			s.logger.Fatal("writing stats", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
