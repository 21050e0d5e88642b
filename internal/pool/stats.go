package pool

import "github.com/spigell/talent-matcher/internal/matching"

// Stats summarises how much matching work a pool represents.
type Stats struct {
	TotalActiveJobs           int     `json:"total_active_jobs"`
	TotalCandidates           int     `json:"total_candidates"`
	AverageRequirementsPerJob float64 `json:"average_requirements_per_job"`
	AverageSkillsPerCandidate float64 `json:"average_skills_per_candidate"`
	PotentialMatches          int     `json:"potential_matches"`
}

// ComputeStats counts unique normalized skills. Averages only include jobs and
// candidates that list at least one skill.
func ComputeStats(p *Pool) Stats {
	active := p.ActiveJobs()

	requirements := make([]int, 0, len(active))
	for _, job := range active {
		requirements = append(requirements, matching.NewSkillSet(job.Requirements).Len())
	}

	skills := make([]int, 0, len(p.Candidates))
	for _, candidate := range p.Candidates {
		skills = append(skills, matching.NewSkillSet(candidate.Skills).Len())
	}

	return Stats{
		TotalActiveJobs:           len(active),
		TotalCandidates:           len(p.Candidates),
		AverageRequirementsPerJob: averageNonZero(requirements),
		AverageSkillsPerCandidate: averageNonZero(skills),
		PotentialMatches:          len(active) * len(p.Candidates),
	}
}

func averageNonZero(counts []int) float64 {
	var sum, n int
	for _, c := range counts {
		if c == 0 {
			continue
		}
		sum += c
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
