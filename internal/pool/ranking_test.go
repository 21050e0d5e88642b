package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spigell/talent-matcher/internal/matching"
)

func testRanking() *Ranking {
	return &Ranking{
		JobID: "job-1",
		Items: []*RankedCandidate{
			{ScoredCandidate: matching.ScoredCandidate{CandidateID: "a", Score: 90, MatchedSkills: []string{"go", "sql"}, ExperienceYears: 8}, Name: "Ann", Location: "Berlin"},
			{ScoredCandidate: matching.ScoredCandidate{CandidateID: "b", Score: 70}, Name: "Ben", Location: " berlin"},
			{ScoredCandidate: matching.ScoredCandidate{CandidateID: "c", Score: 50}, Name: "Cid"},
			{ScoredCandidate: matching.ScoredCandidate{CandidateID: "d", Score: 30}, Name: "Dee", Location: "Remote"},
		},
	}
}

func TestRankingExcludeKeepsOrder(t *testing.T) {
	t.Parallel()

	r := testRanking()
	removed := r.Exclude([]string{"c", "a", "missing"})

	if !slices.Equal(removed, []string{"a", "c"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if !slices.Equal(r.IDs(), []string{"b", "d"}) {
		t.Fatalf("unexpected remaining ids: %v", r.IDs())
	}

	if removed := r.Exclude(nil); removed != nil {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
}

func TestRankingExcludeBelowAndTruncate(t *testing.T) {
	t.Parallel()

	r := testRanking()
	if removed := r.ExcludeBelow(50); !slices.Equal(removed, []string{"d"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}

	if removed := r.Truncate(2); !slices.Equal(removed, []string{"c"}) {
		t.Fatalf("unexpected truncated ids: %v", removed)
	}

	if !slices.Equal(r.IDs(), []string{"a", "b"}) {
		t.Fatalf("unexpected remaining ids: %v", r.IDs())
	}

	if removed := r.Truncate(10); removed != nil {
		t.Fatalf("expected no truncation, got %v", removed)
	}
}

func TestRankingFindByID(t *testing.T) {
	t.Parallel()

	r := testRanking()
	if item := r.FindByID("b"); item == nil || item.Name != "Ben" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item := r.FindByID("zzz"); item != nil {
		t.Fatalf("expected nil, got %+v", item)
	}
}

func TestReportByLocation(t *testing.T) {
	t.Parallel()

	report := testRanking().ReportByLocation()

	berlin := report["berlin"]
	if len(berlin) != 2 {
		t.Fatalf("expected 2 candidates in berlin, got %d", len(berlin))
	}
	if berlin[0]["rank"] != "1" || berlin[0]["score"] != "90.00" || berlin[0]["matched skills"] != "go, sql" {
		t.Fatalf("unexpected first berlin entry: %v", berlin[0])
	}
	if len(report[unknownLocation]) != 1 || report[unknownLocation][0]["id"] != "c" {
		t.Fatalf("expected candidate c under unknown location: %v", report[unknownLocation])
	}
}

func TestDumpToTmpFile(t *testing.T) {
	r := testRanking()
	path, err := r.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("dump is not valid json: %v", err)
	}

	items, ok := decoded["items"].([]any)
	if !ok || len(items) != 4 {
		t.Fatalf("unexpected items in dump: %v", decoded["items"])
	}
	first := items[0].(map[string]any)
	if first["candidate_id"] != "a" || first["name"] != "Ann" {
		t.Fatalf("expected flattened candidate fields, got %v", first)
	}
}

func TestExcludedCandidatesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := GetExcludedCandidatesFromFile(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(excluded.Items))
	}

	excluded.Append(testRanking().ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	shorter := &ExcludedCandidates{Items: excluded.Items[:1]}
	if err := shorter.ToFile(path); err != nil {
		t.Fatalf("rewriting exclude file: %v", err)
	}

	loaded, err := GetExcludedCandidatesFromFile(path)
	if err != nil {
		t.Fatalf("reading exclude file: %v", err)
	}
	if !slices.Equal(loaded.CandidateIDs(), []string{"a"}) {
		t.Fatalf("unexpected ids: %v", loaded.CandidateIDs())
	}
	if loaded.Items[0].JobID != "job-1" || loaded.Items[0].ExcludedAt.IsZero() {
		t.Fatalf("unexpected excluded entry: %+v", loaded.Items[0])
	}

	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("truncating: %v", err)
	}
	empty, err := GetExcludedCandidatesFromFile(path)
	if err != nil || len(empty.Items) != 0 {
		t.Fatalf("expected empty list for empty file, got %v, %v", empty, err)
	}
}

func jobRankingWithScores(scores ...float64) *JobRanking {
	r := &JobRanking{CandidateID: "w"}
	for i, score := range scores {
		r.Items = append(r.Items, &RankedJob{ScoredJob: matching.ScoredJob{JobID: fmt.Sprintf("j%03d", i+1), Score: score}})
	}
	return r
}

func TestJobRankingNarrow(t *testing.T) {
	t.Parallel()

	r := jobRankingWithScores(90, 60, 40, 10)

	dropped, err := r.Narrow(20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if r.Len() != 2 || r.Items[0].JobID != "j001" || r.Items[1].JobID != "j002" {
		t.Fatalf("unexpected items: %+v", r.Items)
	}

	dropped, err = r.Narrow(0, 0)
	if err != nil || dropped != 0 {
		t.Fatalf("expected nothing dropped, got %d (%v)", dropped, err)
	}
}

func TestJobRankingNarrowLimits(t *testing.T) {
	t.Parallel()

	scores := make([]float64, 150)
	for i := range scores {
		scores[i] = 50
	}

	tests := []struct {
		name  string
		limit int
		left  int
	}{
		{name: "zero falls back to default", limit: 0, left: DefaultLimit},
		{name: "negative falls back to default", limit: -3, left: DefaultLimit},
		{name: "above max is capped", limit: 500, left: MaxLimit},
		{name: "within range is kept", limit: 7, left: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := jobRankingWithScores(scores...)
			dropped, err := r.Narrow(0, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Len() != tt.left || dropped != len(scores)-tt.left {
				t.Fatalf("expected %d left, got %d left and %d dropped", tt.left, r.Len(), dropped)
			}
		})
	}
}

func TestJobRankingNarrowRejectsMinScoreOutOfRange(t *testing.T) {
	t.Parallel()

	for _, minScore := range []float64{-1, 100.5} {
		r := jobRankingWithScores(90, 10)
		if _, err := r.Narrow(minScore, 10); err == nil {
			t.Fatalf("expected error for min score %v", minScore)
		}
		if r.Len() != 2 {
			t.Fatalf("ranking must stay untouched on error, got %d items", r.Len())
		}
	}
}
