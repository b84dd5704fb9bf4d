package types

import "github.com/google/uuid"

// RoleMatchKind classifies how an employee's role claims relate to a
// ranking filter's target role and level.
type RoleMatchKind string

// Role match outcomes, strongest first.
const (
	// RoleMatchExact means the employee claims the target role at the target level.
	RoleMatchExact RoleMatchKind = "exact"
	// RoleMatchAdjacent means the employee claims the target role one level away.
	RoleMatchAdjacent RoleMatchKind = "adjacent"
	// RoleMatchNone means no usable role match (or no role was requested).
	RoleMatchNone RoleMatchKind = "none"
)

// CandidateScore is the ephemeral result of scoring one employee against
// one requirement set. It is produced per ranking call and never persisted.
type CandidateScore struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`

	// Score is the presentation-scaled fit score in [0, 100].
	Score float64 `json:"score"`
	// TechnologyScore is the normalized technology component in [0, 1].
	TechnologyScore float64 `json:"technology_score"`

	MatchedTechnologies   int           `json:"matched_technologies"`
	UnmatchedRequirements int           `json:"unmatched_requirements"`
	RoleMatch             RoleMatchKind `json:"role_match"`

	// RelevantYears is the employee's total years across the technologies
	// that matched a requirement. Used as the first ranking tie-breaker.
	RelevantYears float64 `json:"relevant_years"`

	Notes string `json:"notes,omitempty"`
}
