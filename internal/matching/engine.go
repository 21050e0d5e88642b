package matching

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultExperienceCap is the number of years at which experience reaches full credit.
	DefaultExperienceCap = 10

	// Weights are expressed in percent so that full marks add up to exactly 100.
	skillWeight      = 70
	experienceWeight = 30

	minScore = 0.0
	maxScore = 100.0

	// Smaller pools are scored sequentially even when workers are configured.
	parallelThreshold = 64
)

// Params are the caller-owned policy values applied to every ranking call.
type Params struct {
	// ExperienceCap is the number of years earning full experience credit. A job with
	// MinExperienceYears > 0 uses that value instead for its own ranking.
	ExperienceCap int `json:"experience_cap" validate:"gt=0"`
	// LocationBonus is added to the score when job and candidate locations match.
	LocationBonus float64 `json:"location_bonus" validate:"gte=0,lte=100"`
	// Workers bounds the number of goroutines scoring candidates. 0 or 1 means sequential.
	Workers int `json:"workers" validate:"gte=0"`
}

// DefaultParams returns the policy defaults: a 10 year experience cap and no location bonus.
func DefaultParams() Params {
	return Params{ExperienceCap: DefaultExperienceCap}
}

// Engine scores and orders candidates. It holds only immutable parameters.
type Engine struct {
	params Params
}

// NewEngine validates params and returns an engine using them.
func NewEngine(params Params) (*Engine, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return &Engine{params: params}, nil
}

// Rank is a shortcut for NewEngine(params) followed by Engine.Rank.
func Rank(job JobRequirement, candidates []CandidateProfile, params Params) ([]ScoredCandidate, error) {
	engine, err := NewEngine(params)
	if err != nil {
		return nil, err
	}
	return engine.Rank(job, candidates)
}

func (e *Engine) Params() Params {
	return e.params
}

// Rank scores every candidate against the job and returns them best-first.
// The output always has one entry per candidate. Input is validated first and the
// first invalid record is reported as a *ValidationError.
func (e *Engine) Rank(job JobRequirement, candidates []CandidateProfile) ([]ScoredCandidate, error) {
	if err := validateJobs([]JobRequirement{job}, false); err != nil {
		return nil, err
	}
	if err := validateCandidates(candidates); err != nil {
		return nil, err
	}

	req := e.requirement(job)
	out := make([]ScoredCandidate, len(candidates))

	e.forEach(len(candidates), func(i int) {
		candidate := candidates[i]
		b := e.evaluate(req, NewSkillSet(candidate.Skills), Normalize(candidate.Location), candidate.ExperienceYears)
		out[i] = ScoredCandidate{
			CandidateID:        candidate.ID,
			Score:              b.score,
			SkillScore:         b.skillScore,
			ExperienceScore:    b.experienceScore,
			LocationAdjustment: b.locationAdjustment,
			LocationMatched:    b.locationMatched,
			SkillOverlapCount:  len(b.matched),
			SkillOverlapRatio:  b.ratio,
			MatchedSkills:      b.matched,
			ExperienceYears:    candidate.ExperienceYears,
		}
	})

	slices.SortFunc(out, compareCandidates)
	return out, nil
}

// RankJobs scores every job for a single candidate and returns them best-first.
// Jobs must carry unique ids.
func (e *Engine) RankJobs(candidate CandidateProfile, jobs []JobRequirement) ([]ScoredJob, error) {
	if err := validateCandidates([]CandidateProfile{candidate}); err != nil {
		return nil, err
	}
	if err := validateJobs(jobs, true); err != nil {
		return nil, err
	}

	skills := NewSkillSet(candidate.Skills)
	location := Normalize(candidate.Location)
	out := make([]ScoredJob, len(jobs))

	e.forEach(len(jobs), func(i int) {
		job := jobs[i]
		b := e.evaluate(e.requirement(job), skills, location, candidate.ExperienceYears)
		out[i] = ScoredJob{
			JobID:              job.ID,
			Score:              b.score,
			SkillScore:         b.skillScore,
			ExperienceScore:    b.experienceScore,
			LocationAdjustment: b.locationAdjustment,
			LocationMatched:    b.locationMatched,
			SkillOverlapCount:  len(b.matched),
			SkillOverlapRatio:  b.ratio,
			MatchedSkills:      b.matched,
		}
	})

	slices.SortFunc(out, compareJobs)
	return out, nil
}

type requirement struct {
	skills   SkillSet
	location string
	cap      int
}

type breakdown struct {
	score              float64
	skillScore         float64
	experienceScore    float64
	locationAdjustment float64
	locationMatched    bool
	ratio              float64
	matched            []string
}

func (e *Engine) requirement(job JobRequirement) requirement {
	limit := e.params.ExperienceCap
	if job.MinExperienceYears > 0 {
		limit = job.MinExperienceYears
	}
	return requirement{
		skills:   NewSkillSet(job.RequiredSkills),
		location: Normalize(job.PreferredLocation),
		cap:      limit,
	}
}

func (e *Engine) evaluate(req requirement, skills SkillSet, location string, years int) breakdown {
	var b breakdown

	b.matched = req.skills.Intersect(skills)
	if req.skills.Len() == 0 {
		b.ratio = 1
		b.skillScore = maxScore
	} else {
		b.ratio = float64(len(b.matched)) / float64(req.skills.Len())
		b.skillScore = clamp(maxScore*float64(len(b.matched))/float64(req.skills.Len()), minScore, maxScore)
	}

	b.experienceScore = maxScore * float64(min(years, req.cap)) / float64(req.cap)

	if req.location != "" && location != "" && req.location == location {
		b.locationMatched = true
		b.locationAdjustment = e.params.LocationBonus
	}

	base := (skillWeight*b.skillScore + experienceWeight*b.experienceScore) / 100
	b.score = clamp(base+b.locationAdjustment, minScore, maxScore)

	return b
}

func (e *Engine) forEach(n int, fn func(i int)) {
	if e.params.Workers <= 1 || n < parallelThreshold {
		for i := range n {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.params.Workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func compareCandidates(a, b ScoredCandidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SkillOverlapCount, a.SkillOverlapCount); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ExperienceYears, a.ExperienceYears); c != 0 {
		return c
	}
	return strings.Compare(a.CandidateID, b.CandidateID)
}

func compareJobs(a, b ScoredJob) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SkillOverlapCount, a.SkillOverlapCount); c != 0 {
		return c
	}
	return strings.Compare(a.JobID, b.JobID)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
