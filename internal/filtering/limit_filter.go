package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/pool"
)

const (
	DefaultLimit = pool.DefaultLimit
	MaxLimit     = pool.MaxLimit
)

type limitFilter struct {
	limit  int
	logger *zap.Logger
}

// NewLimit creates a filter keeping only the best candidates. Non-positive values fall
// back to DefaultLimit and values above MaxLimit are capped.
func NewLimit(limit int, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &limitFilter{limit: pool.EffectiveLimit(limit), logger: logger}
}

func (f *limitFilter) Name() string { return "limit" }

// Disable is a no-op, the limit always applies.
func (f *limitFilter) Disable(string) {}

func (f *limitFilter) IsEnabled() bool { return true }

func (f *limitFilter) Validate() error { return nil }

func (f *limitFilter) Apply(_ context.Context, r *pool.Ranking) (*pool.Ranking, Step, error) {
	initial := r.Len()
	truncated := r.Truncate(f.limit)
	if len(truncated) > 0 {
		f.logger.Debug("truncating ranking",
			zap.Int("limit", f.limit),
			zap.Strings("excluded_candidates", truncated),
		)
	}

	return r, Step{Initial: initial, Dropped: len(truncated), Left: r.Len()}, nil
}

func (f *limitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}
