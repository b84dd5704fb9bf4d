package composer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

// assembleFallback builds a composition deterministically when the
// generative collaborator is unavailable. Identical request and pool
// always produce the identical composition.
func (g *Generator) assembleFallback(ctx context.Context, req *types.CompositionRequest, pool []types.EmployeeProfile) (*types.TeamComposition, error) {
	filter := ranking.Filter{Role: req.Role, Area: req.Area, Level: req.Level}
	ranked, err := g.ranker.Rank(ctx, pool, req.Requirements, filter)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, &ErrCompositionFailed{Reason: "no eligible candidates in the pool"}
	}

	poolByID := make(map[uuid.UUID]*types.EmployeeProfile, len(pool))
	for i := range pool {
		poolByID[pool[i].ID] = &pool[i]
	}

	// Greedy cover: walk requirements still uncovered and take the
	// highest-ranked unassigned candidate holding that technology. The
	// ranked order is deterministic, so the assembly is too.
	assigned := make([]types.CandidateScore, 0, req.TeamSize)
	assignedIDs := make(map[uuid.UUID]bool, req.TeamSize)
	covered := make(map[string]bool, len(req.Requirements))

	for len(assigned) < req.TeamSize {
		progressed := false
		for _, requirement := range req.Requirements {
			if len(assigned) >= req.TeamSize {
				break
			}
			key := strings.ToLower(requirement.Technology)
			if covered[key] {
				continue
			}
			for _, candidate := range ranked {
				if assignedIDs[candidate.EmployeeID] {
					continue
				}
				skill, holds := poolByID[candidate.EmployeeID].TechnologyLevel(requirement.Technology)
				if !holds {
					continue
				}
				assigned = append(assigned, candidate)
				assignedIDs[candidate.EmployeeID] = true
				if skill.Level >= requirement.MinimumLevel {
					covered[key] = true
				}
				progressed = true
				break
			}
			if !covered[key] {
				// Nobody left holds it; stop revisiting this requirement.
				covered[key] = true
			}
		}
		if !progressed {
			break
		}
	}

	// Fill remaining seats with the best unassigned candidates overall.
	for _, candidate := range ranked {
		if len(assigned) >= req.TeamSize {
			break
		}
		if !assignedIDs[candidate.EmployeeID] {
			assigned = append(assigned, candidate)
			assignedIDs[candidate.EmployeeID] = true
		}
	}

	if len(assigned) == 0 {
		return nil, &ErrCompositionFailed{Reason: "could not assign any candidate to the team"}
	}

	leader := selectLeader(assigned, poolByID)
	members := make([]types.EmployeeProfile, 0, len(assigned))
	proposedMembers := make([]types.ProposedMember, 0, len(assigned))
	for _, candidate := range assigned {
		employee := poolByID[candidate.EmployeeID]
		members = append(members, *employee)
		member := types.ProposedMember{ID: employee.ID, Name: employee.Name}
		if claim, ok := employee.RoleAt(req.Role); ok {
			member.Role = claim.Role
			member.Level = claim.Level
		} else if len(employee.Roles) > 0 {
			member.Role = employee.Roles[0].Role
			member.Level = employee.Roles[0].Level
		}
		proposedMembers = append(proposedMembers, member)
	}

	conflicts := roleConflicts(members, g.opts.RedundancyLevel)
	team := types.ProposedTeam{
		Name:    req.TeamName,
		Members: proposedMembers,
		Leader: types.ProposedLeader{
			ID:   leader.EmployeeID,
			Name: leader.EmployeeName,
			Rationale: fmt.Sprintf("Highest compatibility score on the roster (%.0f) with %.0f years of relevant experience",
				leader.Score, leader.RelevantYears),
		},
		Analysis: analyzeCoverage(members, req.Requirements, assigned, conflicts),
	}

	composition := &types.TeamComposition{
		Teams:              []types.ProposedTeam{team},
		CompatibilityScore: averageScore(assigned),
		Source:             types.SourceFallback,
	}

	for _, candidate := range assigned {
		employee := poolByID[candidate.EmployeeID]
		composition.Candidates = append(composition.Candidates, types.CandidateNote{
			ID:                 candidate.EmployeeID,
			Name:               candidate.EmployeeName,
			CompatibilityScore: candidate.Score,
			Analysis:           candidate.Notes,
			PotentialConflicts: memberConflicts(employee, members, g.opts.RedundancyLevel),
			TeamImpact:         describeImpact(employee, req.Requirements),
		})
	}

	return composition, nil
}

// selectLeader picks the assigned member with the highest individual
// score; ties break by total seniority, then by ascending employee ID.
func selectLeader(assigned []types.CandidateScore, poolByID map[uuid.UUID]*types.EmployeeProfile) types.CandidateScore {
	best := assigned[0]
	for _, candidate := range assigned[1:] {
		switch {
		case candidate.Score > best.Score:
			best = candidate
		case candidate.Score == best.Score:
			candidateYears := poolByID[candidate.EmployeeID].TotalYears()
			bestYears := poolByID[best.EmployeeID].TotalYears()
			if candidateYears > bestYears ||
				(candidateYears == bestYears && candidate.EmployeeID.String() < best.EmployeeID.String()) {
				best = candidate
			}
		}
	}
	return best
}

// analyzeCoverage derives strengths and weaknesses from the team's
// aggregate technology coverage: covered with margin is a strength,
// uncovered or merely at the floor is a weakness.
func analyzeCoverage(members []types.EmployeeProfile, requirements []types.RequiredTechnology, assigned []types.CandidateScore, conflicts []string) types.TeamAnalysis {
	analysis := types.TeamAnalysis{}

	for _, requirement := range requirements {
		maxLevel := 0
		for i := range members {
			if skill, ok := members[i].TechnologyLevel(requirement.Technology); ok && skill.Level > maxLevel {
				maxLevel = skill.Level
			}
		}
		switch {
		case maxLevel > requirement.MinimumLevel:
			analysis.Strengths = append(analysis.Strengths,
				fmt.Sprintf("%s covered with margin (level %d against a floor of %d)",
					requirement.Technology, maxLevel, requirement.MinimumLevel))
		case maxLevel == requirement.MinimumLevel:
			analysis.Weaknesses = append(analysis.Weaknesses,
				fmt.Sprintf("%s covered with no margin (level %d at the floor)",
					requirement.Technology, maxLevel))
		case maxLevel > 0:
			analysis.Weaknesses = append(analysis.Weaknesses,
				fmt.Sprintf("%s under-covered (best level %d below the floor of %d)",
					requirement.Technology, maxLevel, requirement.MinimumLevel))
		default:
			analysis.Weaknesses = append(analysis.Weaknesses,
				fmt.Sprintf("%s uncovered by the roster", requirement.Technology))
		}
	}

	average := averageScore(assigned)
	summary := fmt.Sprintf("Average member compatibility %.0f/100", average)
	if len(conflicts) > 0 {
		summary += fmt.Sprintf("; %d potential role conflict(s) flagged", len(conflicts))
	}
	analysis.Compatibility = summary

	return analysis
}

// roleConflicts flags pairs of members claiming the same specialized role
// at or above the redundancy threshold.
func roleConflicts(members []types.EmployeeProfile, threshold types.ExperienceLevel) []string {
	holders := make(map[string][]string)
	for i := range members {
		for _, claim := range members[i].Roles {
			if claim.Level.AtLeast(threshold) {
				key := strings.ToLower(claim.Role)
				holders[key] = append(holders[key], members[i].Name)
			}
		}
	}

	roles := make([]string, 0, len(holders))
	for role, names := range holders {
		if len(names) > 1 {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)

	conflicts := make([]string, 0, len(roles))
	for _, role := range roles {
		names := holders[role]
		sort.Strings(names)
		conflicts = append(conflicts, fmt.Sprintf("%s all hold the %s role at %s level or above",
			strings.Join(names, " and "), role, threshold))
	}
	return conflicts
}

// memberConflicts returns the roster conflicts one member participates in.
func memberConflicts(employee *types.EmployeeProfile, members []types.EmployeeProfile, threshold types.ExperienceLevel) []string {
	var conflicts []string
	for _, claim := range employee.Roles {
		if !claim.Level.AtLeast(threshold) {
			continue
		}
		for i := range members {
			if members[i].ID == employee.ID {
				continue
			}
			other, ok := members[i].RoleAt(claim.Role)
			if ok && other.Level.AtLeast(threshold) {
				conflicts = append(conflicts, fmt.Sprintf("Overlaps with %s on the %s role", members[i].Name, claim.Role))
			}
		}
	}
	return conflicts
}

// describeImpact summarizes which requirements a member contributes to.
func describeImpact(employee *types.EmployeeProfile, requirements []types.RequiredTechnology) string {
	var satisfied, partial []string
	for _, requirement := range requirements {
		skill, ok := employee.TechnologyLevel(requirement.Technology)
		if !ok {
			continue
		}
		if skill.Level >= requirement.MinimumLevel {
			satisfied = append(satisfied, requirement.Technology)
		} else {
			partial = append(partial, requirement.Technology)
		}
	}
	switch {
	case len(satisfied) > 0 && len(partial) > 0:
		return fmt.Sprintf("Satisfies %s; partial coverage of %s",
			strings.Join(satisfied, ", "), strings.Join(partial, ", "))
	case len(satisfied) > 0:
		return fmt.Sprintf("Satisfies %s", strings.Join(satisfied, ", "))
	case len(partial) > 0:
		return fmt.Sprintf("Partial coverage of %s", strings.Join(partial, ", "))
	default:
		return "No direct requirement coverage"
	}
}

// averageScore is the mean compatibility score across assigned members.
func averageScore(assigned []types.CandidateScore) float64 {
	if len(assigned) == 0 {
		return 0
	}
	total := 0.0
	for _, candidate := range assigned {
		total += candidate.Score
	}
	return total / float64(len(assigned))
}
