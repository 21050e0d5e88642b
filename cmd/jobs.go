package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/pool"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Rank the active jobs of the pool for a candidate",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFilterFlags(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		jobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().String("candidate", "", "id of the candidate to rank jobs for")
	jobsCmd.Flags().Float64("min-score", 0, "drop jobs scoring below this value")
	jobsCmd.Flags().Int("limit", pool.DefaultLimit, fmt.Sprintf("maximum number of jobs to return (at most %d)", pool.MaxLimit))

	jobsCmd.MarkFlagRequired("candidate")
}

func jobs(cmd *cobra.Command) {
	s := newSession("jobs")

	candidateID, _ := cmd.Flags().GetString("candidate")
	l := logger.WithRunFields(s.logger, "", "", candidateID)

	ranking, err := s.pool.RankJobs(s.engine, candidateID)
	if err != nil {
		l.Fatal("ranking jobs", zap.Error(err))
	}

	initial := ranking.Len()
	dropped, err := ranking.Narrow(s.config.Filters.MinScore, s.config.Filters.Limit)
	if err != nil {
		l.Fatal("narrowing jobs", zap.Error(err))
	}

	l.Info("jobs ranked",
		zap.Int("initial", initial),
		zap.Int("dropped", dropped),
		zap.Int("left", ranking.Len()),
		zap.Int("limit", pool.EffectiveLimit(s.config.Filters.Limit)),
	)

	if err := writeJSON(cmd.OutOrStdout(), ranking); err != nil {
		l.Fatal("writing ranking", zap.Error(err))
	}
}
