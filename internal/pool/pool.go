// Package pool loads jobs and candidates from a pool document and turns engine output
// into rankings the CLI can filter, report and persist.
package pool

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/talent-matcher/internal/matching"
)

var (
	ErrInvalidDocument   = errors.New("invalid pool document")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobInactive       = errors.New("job is not active")
	ErrCandidateNotFound = errors.New("candidate not found")
)

type Pool struct {
	Jobs       []*Job       `json:"jobs"`
	Candidates []*Candidate `json:"candidates"`
}

type Job struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title,omitempty"`
	Requirements       []string `json:"requirements"`
	Location           string   `json:"location,omitempty"`
	MinExperienceYears int      `json:"min_experience_years,omitempty"`
	// Active defaults to true when omitted.
	Active *bool `json:"active,omitempty"`
}

type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location,omitempty"`
}

// Load reads a YAML or JSON pool document, checks it against the pool schema and decodes it.
func Load(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pool file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON pool document.
func Parse(data []byte) (*Pool, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if raw == nil {
		return &Pool{}, nil
	}

	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var p Pool
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &p,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return &p, nil
}

func (p *Pool) FindJob(id string) *Job {
	for _, job := range p.Jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (p *Pool) FindCandidate(id string) *Candidate {
	for _, candidate := range p.Candidates {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// ActiveJobs returns the jobs open for matching, in document order.
func (p *Pool) ActiveJobs() []*Job {
	active := make([]*Job, 0, len(p.Jobs))
	for _, job := range p.Jobs {
		if job.IsActive() {
			active = append(active, job)
		}
	}
	return active
}

// JobIDs returns the ids of all jobs, active or not.
func (p *Pool) JobIDs() []string {
	ids := make([]string, 0, len(p.Jobs))
	for _, job := range p.Jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

// RankCandidates ranks every candidate in the pool against an active job.
func (p *Pool) RankCandidates(engine *matching.Engine, jobID string) (*Ranking, error) {
	job := p.FindJob(strings.TrimSpace(jobID))
	if job == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if !job.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrJobInactive, job.ID)
	}

	profiles := make([]matching.CandidateProfile, 0, len(p.Candidates))
	for _, candidate := range p.Candidates {
		profiles = append(profiles, candidate.Profile())
	}

	scored, err := engine.Rank(job.Requirement(), profiles)
	if err != nil {
		return nil, fmt.Errorf("ranking candidates for job %s: %w", job.ID, err)
	}

	return NewRanking(job, scored, p.Candidates), nil
}

// RankJobs ranks every active job in the pool for a candidate.
func (p *Pool) RankJobs(engine *matching.Engine, candidateID string) (*JobRanking, error) {
	candidate := p.FindCandidate(strings.TrimSpace(candidateID))
	if candidate == nil {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}

	active := p.ActiveJobs()
	requirements := make([]matching.JobRequirement, 0, len(active))
	for _, job := range active {
		requirements = append(requirements, job.Requirement())
	}

	scored, err := engine.RankJobs(candidate.Profile(), requirements)
	if err != nil {
		return nil, fmt.Errorf("ranking jobs for candidate %s: %w", candidate.ID, err)
	}

	return NewJobRanking(candidate, scored, active), nil
}

func (j *Job) IsActive() bool {
	return j.Active == nil || *j.Active
}

func (j *Job) Requirement() matching.JobRequirement {
	return matching.JobRequirement{
		ID:                 j.ID,
		RequiredSkills:     j.Requirements,
		PreferredLocation:  j.Location,
		MinExperienceYears: j.MinExperienceYears,
	}
}

func (c *Candidate) Profile() matching.CandidateProfile {
	return matching.CandidateProfile{
		ID:              c.ID,
		Skills:          c.Skills,
		ExperienceYears: c.ExperienceYears,
		Location:        c.Location,
	}
}
