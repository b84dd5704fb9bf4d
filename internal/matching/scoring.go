// Package matching scores how well an employee fits a team's open requirements.
package matching

import (
	"github.com/jonathan/team-composer/internal/config"
	"github.com/jonathan/team-composer/internal/types"
)

// Weights holds the scoring policy. All values come from configuration;
// the zero value is unusable, use DefaultWeights or FromConfig.
type Weights struct {
	// TechnologyWeight is the share of the final score carried by
	// technology coverage, in [0, 1].
	TechnologyWeight float64
	// RoleExactBonus is added when the employee claims the target role at
	// the target level.
	RoleExactBonus float64
	// RoleAdjacentBonus is added when the employee claims the target role
	// one level away from the target.
	RoleAdjacentBonus float64
	// ProficiencyCap caps the level credited per requirement.
	ProficiencyCap int
}

// DefaultWeights returns the package-default scoring policy.
func DefaultWeights() Weights {
	return Weights{
		TechnologyWeight:  config.DefaultTechnologyWeight,
		RoleExactBonus:    config.DefaultRoleExactBonus,
		RoleAdjacentBonus: config.DefaultRoleAdjacentBonus,
		ProficiencyCap:    config.DefaultProficiencyCap,
	}
}

// FromConfig builds scoring weights from loaded configuration.
func FromConfig(cfg *config.Config) Weights {
	return Weights{
		TechnologyWeight:  cfg.TechnologyWeight,
		RoleExactBonus:    cfg.RoleExactBonus,
		RoleAdjacentBonus: cfg.RoleAdjacentBonus,
		ProficiencyCap:    cfg.ProficiencyCap,
	}
}

// RoleTarget is the optional role/level dimension of a scoring query.
// An empty Role disables the role bonus entirely.
type RoleTarget struct {
	Role  string
	Level types.ExperienceLevel
}

// Scorer evaluates employee fit against requirement sets. It is pure:
// identical inputs always produce identical scores, and sparse data
// degrades to a low score, never to an error.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer with the given policy weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the compatibility of one employee against one requirement
// set. Each requirement contributes min(level, cap)/minimumLevel capped at
// full credit; unmatched requirements contribute zero. The technology
// component is the mean contribution, so it stays in [0, 1]. The role
// bonus is additive and the final score scales to [0, 100].
func (s *Scorer) Score(employee *types.EmployeeProfile, requirements []types.RequiredTechnology, target RoleTarget) types.CandidateScore {
	result := types.CandidateScore{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		RoleMatch:    types.RoleMatchNone,
	}

	if len(requirements) > 0 {
		total := 0.0
		for _, req := range requirements {
			skill, found := employee.TechnologyLevel(req.Technology)
			if !found || req.MinimumLevel < 1 {
				if !found {
					result.UnmatchedRequirements++
				}
				continue
			}
			level := skill.Level
			if s.weights.ProficiencyCap > 0 && level > s.weights.ProficiencyCap {
				level = s.weights.ProficiencyCap
			}
			contribution := float64(level) / float64(req.MinimumLevel)
			if contribution > 1.0 {
				contribution = 1.0
			}
			total += contribution
			result.MatchedTechnologies++
			result.RelevantYears += skill.YearsExperience
		}
		result.TechnologyScore = total / float64(len(requirements))
	}

	bonus := 0.0
	if target.Role != "" {
		if claim, found := employee.RoleAt(target.Role); found {
			switch {
			case target.Level == "" || claim.Level == target.Level:
				// No target level means any claim of the role is a full match.
				result.RoleMatch = types.RoleMatchExact
				bonus = s.weights.RoleExactBonus
			case claim.Level.AdjacentTo(target.Level):
				result.RoleMatch = types.RoleMatchAdjacent
				bonus = s.weights.RoleAdjacentBonus
			}
		}
	}

	score := (s.weights.TechnologyWeight*result.TechnologyScore + bonus) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.Score = score

	return result
}
