// Package types provides type definitions for structured data used throughout the team-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExperienceLevel is the ordinal seniority of a specialized role claim.
type ExperienceLevel string

// Experience levels, ordered junior to senior.
const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// levelRank maps each level to its ordinal position for adjacency checks.
var levelRank = map[ExperienceLevel]int{
	LevelJunior: 0,
	LevelMid:    1,
	LevelSenior: 2,
}

// ParseExperienceLevel parses a level string case-insensitively.
// Unknown values are an error; callers must not guess a default.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior", "jr":
		return LevelJunior, nil
	case "mid", "middle", "intermediate":
		return LevelMid, nil
	case "senior", "sr":
		return LevelSenior, nil
	default:
		return "", fmt.Errorf("unknown experience level: %q", s)
	}
}

// Valid reports whether the level is one of the defined constants.
func (l ExperienceLevel) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// AdjacentTo reports whether two levels are exactly one step apart.
// Junior and mid are adjacent, mid and senior are adjacent; junior and
// senior are not. Equal levels are not adjacent.
func (l ExperienceLevel) AdjacentTo(other ExperienceLevel) bool {
	a, okA := levelRank[l]
	b, okB := levelRank[other]
	if !okA || !okB {
		return false
	}
	diff := a - b
	return diff == 1 || diff == -1
}

// AtLeast reports whether the level is equal to or senior to the given floor.
func (l ExperienceLevel) AtLeast(floor ExperienceLevel) bool {
	a, okA := levelRank[l]
	b, okB := levelRank[floor]
	return okA && okB && a >= b
}

// TechnologySkill is one technology an employee holds, with proficiency
// and tenure. Technology names are unique per employee.
type TechnologySkill struct {
	Technology      string  `json:"technology"`
	Level           int     `json:"level"` // 1..5
	YearsExperience float64 `json:"years_experience"`
}

// RoleClaim is a specialized role an employee claims, with level and tenure.
type RoleClaim struct {
	Role  string          `json:"role"`
	Level ExperienceLevel `json:"level"`
	Years float64         `json:"years"`
}

// EmployeeProfile is a snapshot of one employee's matching-relevant state.
// TeamID is a weak reference: the profile never owns the team record.
type EmployeeProfile struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Area         string            `json:"area"`
	Technologies []TechnologySkill `json:"technologies"`
	Roles        []RoleClaim       `json:"roles"`
	TeamID       *uuid.UUID        `json:"team_id,omitempty"`
}

// TechnologyLevel returns the employee's proficiency for a technology,
// matched case-insensitively. The second return is false when the
// employee does not hold the technology at all.
func (e *EmployeeProfile) TechnologyLevel(technology string) (TechnologySkill, bool) {
	for _, t := range e.Technologies {
		if strings.EqualFold(t.Technology, technology) {
			return t, true
		}
	}
	return TechnologySkill{}, false
}

// RoleAt returns the employee's claim for a specialized role, if any.
func (e *EmployeeProfile) RoleAt(role string) (RoleClaim, bool) {
	for _, r := range e.Roles {
		if strings.EqualFold(r.Role, role) {
			return r, true
		}
	}
	return RoleClaim{}, false
}

// TotalYears sums years of experience across all of the employee's
// technologies. Used as a seniority tie-breaker.
func (e *EmployeeProfile) TotalYears() float64 {
	total := 0.0
	for _, t := range e.Technologies {
		total += t.YearsExperience
	}
	return total
}
