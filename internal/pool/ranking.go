package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spigell/talent-matcher/internal/matching"
)

const unknownLocation = "unknown"

// RankedCandidate is an engine result enriched with the candidate's display details.
type RankedCandidate struct {
	matching.ScoredCandidate
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// Ranking is an ordered, best-first list of candidates for a job.
type Ranking struct {
	JobID    string             `json:"job_id"`
	JobTitle string             `json:"job_title,omitempty"`
	Items    []*RankedCandidate `json:"items"`
}

// RankedJob is an engine result enriched with the job's display details.
type RankedJob struct {
	matching.ScoredJob
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
}

// JobRanking is an ordered, best-first list of jobs for a candidate.
type JobRanking struct {
	CandidateID string       `json:"candidate_id"`
	Items       []*RankedJob `json:"items"`
}

func NewRanking(job *Job, scored []matching.ScoredCandidate, candidates []*Candidate) *Ranking {
	byID := make(map[string]*Candidate, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.ID] = candidate
	}

	items := make([]*RankedCandidate, 0, len(scored))
	for _, s := range scored {
		item := &RankedCandidate{ScoredCandidate: s}
		if candidate, ok := byID[s.CandidateID]; ok {
			item.Name = candidate.Name
			item.Location = candidate.Location
		}
		items = append(items, item)
	}

	return &Ranking{JobID: job.ID, JobTitle: job.Title, Items: items}
}

func NewJobRanking(candidate *Candidate, scored []matching.ScoredJob, jobs []*Job) *JobRanking {
	byID := make(map[string]*Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}

	items := make([]*RankedJob, 0, len(scored))
	for _, s := range scored {
		item := &RankedJob{ScoredJob: s}
		if job, ok := byID[s.JobID]; ok {
			item.Title = job.Title
			item.Location = job.Location
		}
		items = append(items, item)
	}

	return &JobRanking{CandidateID: candidate.ID, Items: items}
}

func (r *Ranking) Len() int {
	return len(r.Items)
}

func (r *Ranking) FindByID(id string) *RankedCandidate {
	for _, item := range r.Items {
		if item.CandidateID == id {
			return item
		}
	}
	return nil
}

// IDs returns candidate ids in ranking order.
func (r *Ranking) IDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.CandidateID)
	}
	return ids
}

// Exclude removes the candidates with the given ids, keeping the ranking order.
// It returns the removed ids in the order they were ranked.
func (r *Ranking) Exclude(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	return r.removeWhere(func(item *RankedCandidate) bool {
		_, ok := targets[item.CandidateID]
		return ok
	})
}

// ExcludeBelow removes candidates scoring under the threshold.
func (r *Ranking) ExcludeBelow(threshold float64) []string {
	return r.removeWhere(func(item *RankedCandidate) bool {
		return item.Score < threshold
	})
}

// Truncate keeps the first n candidates and returns the ids of the rest.
func (r *Ranking) Truncate(n int) []string {
	if n < 0 || n >= len(r.Items) {
		return nil
	}

	removed := make([]string, 0, len(r.Items)-n)
	for _, item := range r.Items[n:] {
		removed = append(removed, item.CandidateID)
	}
	r.Items = r.Items[:n]
	return removed
}

func (r *Ranking) removeWhere(drop func(*RankedCandidate) bool) []string {
	var removed []string
	r.Items = slices.DeleteFunc(r.Items, func(item *RankedCandidate) bool {
		if drop(item) {
			removed = append(removed, item.CandidateID)
			return true
		}
		return false
	})
	return removed
}

func (r *Ranking) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByLocation groups ranked candidates by their normalized location.
func (r *Ranking) ReportByLocation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for idx, item := range r.Items {
		key := matching.Normalize(item.Location)
		if key == "" {
			key = unknownLocation
		}
		report[key] = append(report[key], map[string]string{
			"rank":           fmt.Sprintf("%d", idx+1),
			"id":             item.CandidateID,
			"name":           item.Name,
			"score":          fmt.Sprintf("%.2f", item.Score),
			"matched skills": strings.Join(item.MatchedSkills, ", "),
			"experience":     fmt.Sprintf("%d", item.ExperienceYears),
		})
	}
	return report
}

func (r *Ranking) ToExcluded() *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, item := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:         item.CandidateID,
			Name:       item.Name,
			JobID:      r.JobID,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func (r *JobRanking) Len() int {
	return len(r.Items)
}

// Narrow drops jobs scoring below minScore and keeps at most EffectiveLimit(limit) jobs.
// It returns the number of dropped jobs.
func (r *JobRanking) Narrow(minScore float64, limit int) (int, error) {
	if err := ValidateMinScore(minScore); err != nil {
		return 0, err
	}

	initial := len(r.Items)
	r.Items = slices.DeleteFunc(r.Items, func(item *RankedJob) bool {
		return item.Score < minScore
	})
	if limit = EffectiveLimit(limit); len(r.Items) > limit {
		r.Items = r.Items[:limit]
	}
	return initial - len(r.Items), nil
}
