// Package matching ranks candidates against a job requirement (and jobs against a
// candidate) with a weighted skills/experience score and an optional location bonus.
//
// The engine keeps no state between calls and never performs I/O, so an Engine can be
// shared by any number of goroutines.
package matching

// JobRequirement holds the criteria a job posting matches candidates with.
// Skill and location tokens may be supplied in any case; they are normalized before scoring.
type JobRequirement struct {
	// ID is only required when jobs are ranked for a candidate.
	ID                string   `json:"id,omitempty"`
	RequiredSkills    []string `json:"required_skills"`
	PreferredLocation string   `json:"preferred_location,omitempty"`
	// MinExperienceYears replaces the configured experience cap for this job when set.
	MinExperienceYears int `json:"min_experience_years,omitempty" validate:"gte=0"`
}

// CandidateProfile is a worker's matching input. The engine never mutates it.
type CandidateProfile struct {
	ID              string   `json:"id" validate:"required"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	Location        string   `json:"location,omitempty"`
}

// ScoredCandidate is the result of scoring a single candidate against a job.
type ScoredCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`

	SkillScore         float64 `json:"skill_score"`
	ExperienceScore    float64 `json:"experience_score"`
	LocationAdjustment float64 `json:"location_adjustment"`
	LocationMatched    bool    `json:"location_matched"`

	SkillOverlapCount int      `json:"skill_overlap_count"`
	SkillOverlapRatio float64  `json:"skill_overlap_ratio"`
	MatchedSkills     []string `json:"matched_skills"`
	ExperienceYears   int      `json:"experience_years"`
}

// ScoredJob is the result of scoring a single job for a candidate.
type ScoredJob struct {
	JobID string  `json:"job_id"`
	Score float64 `json:"score"`

	SkillScore         float64 `json:"skill_score"`
	ExperienceScore    float64 `json:"experience_score"`
	LocationAdjustment float64 `json:"location_adjustment"`
	LocationMatched    bool    `json:"location_matched"`

	SkillOverlapCount int      `json:"skill_overlap_count"`
	SkillOverlapRatio float64  `json:"skill_overlap_ratio"`
	MatchedSkills     []string `json:"matched_skills"`
}
