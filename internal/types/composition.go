package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CompositionSource records which path produced a composition.
type CompositionSource string

// Composition sources.
const (
	// SourceGenerative means the external generative collaborator produced the roster.
	SourceGenerative CompositionSource = "generative"
	// SourceFallback means the deterministic local assembly produced the roster.
	SourceFallback CompositionSource = "fallback"
)

// CompositionRequest is the caller's input to team generation.
type CompositionRequest struct {
	Role         string               `json:"role,omitempty"`
	Area         string               `json:"area,omitempty"`
	Level        ExperienceLevel      `json:"level,omitempty"`
	Requirements []RequiredTechnology `json:"requirements" validate:"required,min=1,dive"`
	TeamSize     int                  `json:"team_size" validate:"required,gt=0"`
	TeamName     string               `json:"team_name,omitempty"`
}

// Validate checks the request shape: nonempty requirement set with no
// duplicate technologies, positive team size, and a known level if one
// was supplied.
func (r *CompositionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Level != "" && !r.Level.Valid() {
		return &ErrValidation{Field: "level", Message: "unknown experience level: " + string(r.Level)}
	}
	if err := ValidateRequirements(r.Requirements); err != nil {
		return &ErrValidation{Field: "requirements", Message: err.Error()}
	}
	return nil
}

// ProposedMember is one employee placed on a proposed team.
type ProposedMember struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Role  string          `json:"role,omitempty"`
	Level ExperienceLevel `json:"level,omitempty"`
}

// ProposedLeader is the recommended leader of a proposed team. The leader
// is always drawn from the same team's member list.
type ProposedLeader struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rationale string    `json:"rationale,omitempty"`
}

// TeamAnalysis is the narrative assessment attached to a proposed team.
type TeamAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Compatibility string   `json:"compatibility,omitempty"`
}

// ProposedTeam is one roster inside a composition.
type ProposedTeam struct {
	Name     string           `json:"name,omitempty"`
	Members  []ProposedMember `json:"members"`
	Leader   ProposedLeader   `json:"leader"`
	Analysis TeamAnalysis     `json:"analysis"`
}

// CandidateNote is the per-candidate commentary in a composition:
// compatibility score, rationale, and any flagged risks.
type CandidateNote struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	CompatibilityScore float64   `json:"compatibility_score"`
	Analysis           string    `json:"analysis,omitempty"`
	PotentialConflicts []string  `json:"potential_conflicts,omitempty"`
	TeamImpact         string    `json:"team_impact,omitempty"`
}

// TeamComposition is the normalized output of team generation, regardless
// of whether the generative collaborator or the deterministic fallback
// produced it. It is an ephemeral proposal: membership only changes once
// a caller commits it through the membership coordinator.
type TeamComposition struct {
	Teams              []ProposedTeam    `json:"teams"`
	CompatibilityScore float64           `json:"compatibility_score"`
	Candidates         []CandidateNote   `json:"recommended_members"`
	Source             CompositionSource `json:"source"`
}
