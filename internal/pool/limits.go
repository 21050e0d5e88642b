package pool

import "fmt"

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// EffectiveLimit maps a requested result size to the one actually applied:
// non-positive values fall back to DefaultLimit and values above MaxLimit are capped.
func EffectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// ValidateMinScore checks a minimum score threshold lies within [0, 100].
func ValidateMinScore(minScore float64) error {
	if minScore < 0 || minScore > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %v", minScore)
	}
	return nil
}
