package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/pool"
)

type minScoreFilter struct {
	threshold float64
	logger    *zap.Logger
	disabled  bool
	reason    string
}

// NewMinScore creates a filter that drops candidates scoring below the threshold.
// A zero threshold keeps every candidate.
func NewMinScore(threshold float64, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &minScoreFilter{threshold: threshold, logger: logger}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Validate() error {
	return pool.ValidateMinScore(f.threshold)
}

func (f *minScoreFilter) Apply(_ context.Context, r *pool.Ranking) (*pool.Ranking, Step, error) {
	initial := r.Len()
	if f.threshold == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded := r.ExcludeBelow(f.threshold)
	if len(excluded) > 0 {
		f.logger.Debug("excluding candidates below minimum score",
			zap.Float64("min_score", f.threshold),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	details := map[string]string{
		"min_score": strconv.FormatFloat(f.threshold, 'f', 2, 64),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
