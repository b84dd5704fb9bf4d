package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RequiredTechnology is one entry in a team's requirement set: the
// technology and the floor proficiency the team demands for it.
type RequiredTechnology struct {
	Technology   string `json:"technology"`
	MinimumLevel int    `json:"minimum_level"`
}

// Team is a snapshot of one team's matching-relevant state. Members are
// weak references to employee profiles, never embedded records.
type Team struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Area         string               `json:"area"`
	Requirements []RequiredTechnology `json:"requirements"`
	MemberIDs    []uuid.UUID          `json:"member_ids"`
	LeaderID     *uuid.UUID           `json:"leader_id,omitempty"`
}

// HasMember reports whether the employee is currently on the team.
func (t *Team) HasMember(employeeID uuid.UUID) bool {
	for _, id := range t.MemberIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// ValidateRequirements checks the requirement-set invariants: no duplicate
// technology entries and every minimum level at least 1.
func ValidateRequirements(requirements []RequiredTechnology) error {
	seen := make(map[string]bool, len(requirements))
	for _, req := range requirements {
		normalized := strings.ToLower(strings.TrimSpace(req.Technology))
		if normalized == "" {
			return fmt.Errorf("requirement technology cannot be empty")
		}
		if seen[normalized] {
			return fmt.Errorf("duplicate requirement technology: %s", req.Technology)
		}
		seen[normalized] = true
		if req.MinimumLevel < 1 {
			return fmt.Errorf("requirement %s: minimum level must be at least 1", req.Technology)
		}
	}
	return nil
}

// TeamView is the member-resolved view of a team returned by membership
// operations, suitable for API responses.
type TeamView struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Area     string          `json:"area"`
	Members  []MemberSummary `json:"members"`
	LeaderID *uuid.UUID      `json:"leader_id,omitempty"`
}

// MemberSummary is the per-member slice of a TeamView.
type MemberSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Area string    `json:"area"`
}
