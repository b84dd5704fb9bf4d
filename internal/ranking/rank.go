// Package ranking orders candidate employees by fit against a team's requirements.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/team-composer/internal/matching"
	"github.com/jonathan/team-composer/internal/types"
)

// scoringConcurrency bounds the number of candidates scored in parallel
// within one ranking call. Scoring is read-only, so this only trades
// goroutines for latency on large pools.
const scoringConcurrency = 8

// Filter narrows and shapes one ranking call. Role and Level feed the
// role bonus; Area is a structural exclusion: employees from another area
// never appear in the output at all.
type Filter struct {
	Role  string
	Area  string
	Level types.ExperienceLevel
	// ExcludeTeam drops employees already on the requesting team.
	ExcludeTeam *types.Team
}

// Ranker produces ordered candidate recommendations using a Scorer.
type Ranker struct {
	scorer *matching.Scorer
}

// NewRanker creates a Ranker over the given scorer.
func NewRanker(scorer *matching.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every structurally eligible pool member against the
// requirement set and returns them ordered: score descending, relevant
// years descending, then employee ID ascending. The ordering is fully
// deterministic, so identical inputs always produce identical output.
// Candidates with zero overlap still appear, at the tail.
func (r *Ranker) Rank(ctx context.Context, pool []types.EmployeeProfile, requirements []types.RequiredTechnology, filter Filter) ([]types.CandidateScore, error) {
	eligible := make([]types.EmployeeProfile, 0, len(pool))
	for _, employee := range pool {
		if filter.Area != "" && !strings.EqualFold(employee.Area, filter.Area) {
			continue
		}
		if filter.ExcludeTeam != nil && filter.ExcludeTeam.HasMember(employee.ID) {
			continue
		}
		eligible = append(eligible, employee)
	}

	target := matching.RoleTarget{Role: filter.Role, Level: filter.Level}
	scores := make([]types.CandidateScore, len(eligible))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)
	for i := range eligible {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			score := r.scorer.Score(&eligible[i], requirements, target)
			score.Notes = describeScore(score)
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		if scores[i].RelevantYears != scores[j].RelevantYears {
			return scores[i].RelevantYears > scores[j].RelevantYears
		}
		return scores[i].EmployeeID.String() < scores[j].EmployeeID.String()
	})

	return scores, nil
}

// describeScore creates a brief explanation of a candidate's placement.
func describeScore(score types.CandidateScore) string {
	var parts []string

	switch {
	case score.TechnologyScore >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong technology match (%d of %d requirements covered)",
			score.MatchedTechnologies, score.MatchedTechnologies+score.UnmatchedRequirements))
	case score.TechnologyScore >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate technology match (%d of %d requirements covered)",
			score.MatchedTechnologies, score.MatchedTechnologies+score.UnmatchedRequirements))
	case score.MatchedTechnologies > 0:
		parts = append(parts, fmt.Sprintf("Weak technology match (%d of %d requirements covered)",
			score.MatchedTechnologies, score.MatchedTechnologies+score.UnmatchedRequirements))
	default:
		parts = append(parts, "No technology matches")
	}

	switch score.RoleMatch {
	case types.RoleMatchExact:
		parts = append(parts, "Exact role fit")
	case types.RoleMatchAdjacent:
		parts = append(parts, "Role fit one level off")
	case types.RoleMatchNone:
		// No role dimension requested or no usable claim; say nothing.
	}

	if score.RelevantYears >= 5 {
		parts = append(parts, fmt.Sprintf("%.0f years of relevant experience", score.RelevantYears))
	}

	return strings.Join(parts, ". ")
}
