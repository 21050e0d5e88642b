package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/filtering"
	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/pool"
	"github.com/spigell/talent-matcher/internal/utils"
)

const (
	PromptPrint               = "Print ranking"
	PromptReportByLocation    = "Report by location"
	PromptAppendToExcludeFile = "Append ranked candidates to exclude file"
	PromptDumpToFile          = "Dump ranking to file"
	PromptExit                = "Exit"

	maxLogLength = 200
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the candidates of the pool for a job",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFilterFlags(cmd)
		viper.BindPFlag("exclude-file", cmd.Flags().Lookup("exclude-file"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "id of the job to rank candidates for")
	rankCmd.Flags().BoolP("interactive", "i", false, "choose what to do with the ranking from a menu")
	rankCmd.Flags().Float64("min-score", 0, "drop candidates scoring below this value")
	rankCmd.Flags().Int("limit", filtering.DefaultLimit, fmt.Sprintf("maximum number of candidates to return (at most %d)", filtering.MaxLimit))
	rankCmd.Flags().StringP("exclude-file", "e", "", "file with candidates to exclude. Default is unset.")

	rankCmd.MarkFlagRequired("job")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	s := newSession("rank")

	jobID, _ := cmd.Flags().GetString("job")
	l := logger.WithRunFields(s.logger, "", jobID, "")

	job := s.pool.FindJob(jobID)
	if job == nil {
		l.Fatal("job with given id not found", zap.Strings("existing job ids", s.pool.JobIDs()))
	}

	l.Info("starting the ranking",
		zap.String("requirements", utils.JoinForLog(job.Requirements, maxLogLength)),
		zap.String("location", job.Location),
		zap.Any("matching", s.config.Matching),
	)

	ranking, err := s.pool.RankCandidates(s.engine, jobID)
	if err != nil {
		l.Fatal("ranking candidates", zap.Error(err))
	}

	l.Info("candidates ranked", zap.Int("count", ranking.Len()))

	filters := prepareFilters(s.config, l)
	ranking, err = filters.RunFilters(ctx, ranking)
	if err != nil {
		l.Fatal("filtering failed", zap.Error(err))
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive || ranking.Len() == 0 {
		if ranking.Len() == 0 {
			l.Info("no candidates left after filters")
		}
		if err := writeJSON(cmd.OutOrStdout(), ranking); err != nil {
			l.Fatal("writing ranking", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: promptItems(s.config),
		}

		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		l.Info("current ranking", zap.Int("count", ranking.Len()))

		if err := handleAction(cmd, action, l, s.config, ranking); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func promptItems(config *Config) []string {
	items := []string{PromptPrint, PromptReportByLocation, PromptDumpToFile}
	if strings.TrimSpace(config.ExcludeFile) != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(cmd *cobra.Command, action string, l *zap.Logger, config *Config, ranking *pool.Ranking) error {
	switch action {
	case PromptPrint:
		return writeJSON(cmd.OutOrStdout(), ranking)
	case PromptReportByLocation:
		return writeJSON(cmd.OutOrStdout(), ranking.ReportByLocation())
	case PromptDumpToFile:
		filename, err := ranking.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump ranking to file: %w", err)
		}
		l.Info("dumping ranking to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(l, config.ExcludeFile, ranking)
	case PromptExit:
		l.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(l *zap.Logger, path string, ranking *pool.Ranking) error {
	if ranking.Len() == 0 {
		l.Info("nothing to append", zap.String("filename", path))
		return nil
	}

	excluded, err := pool.GetExcludedCandidatesFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(ranking.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	l.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", ranking.Len()))

	ranking.Exclude(excluded.CandidateIDs())
	return nil
}

func prepareFilters(config *Config, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewMinScore(config.Filters.MinScore, l),
		filtering.NewExcludeFile(config.ExcludeFile, l),
		filtering.NewLimit(config.Filters.Limit, l),
	}

	f := filtering.New(steps, l)
	for _, status := range f.Describe() {
		l.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	return f
}
