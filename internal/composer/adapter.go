package composer

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/team-composer/internal/types"
)

// External response shapes, after key normalization to snake_case. The
// producer may emit camelCase or snake_case; both normalize to these tags.
type externalComposition struct {
	Teams              []externalTeam       `json:"teams"`
	RecommendedLeader  *externalLeader      `json:"recommended_leader"`
	TeamAnalysis       *externalAnalysis    `json:"team_analysis"`
	CompatibilityScore float64              `json:"compatibility_score"`
	RecommendedMembers []externalMemberNote `json:"recommended_members"`
}

type externalTeam struct {
	Name    string           `json:"name"`
	Members []externalMember `json:"members"`
}

type externalMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Level string `json:"level"`
}

type externalLeader struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
}

type externalAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Compatibility string   `json:"compatibility"`
}

type externalMemberNote struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	CompatibilityScore float64  `json:"compatibility_score"`
	Analysis           string   `json:"analysis"`
	PotentialConflicts []string `json:"potential_conflicts"`
	TeamImpact         string   `json:"team_impact"`
}

// normalizeComposition validates and converts a raw collaborator response
// into the internal composition shape. The adapter is total: every field
// it consumes has a defined source after key normalization, member IDs
// must resolve to pool employees, and the recommended leader must sit on
// one of the returned teams. Any violation is an error; the generator
// treats it like a collaborator failure and falls back.
func normalizeComposition(raw string, pool []types.EmployeeProfile) (*types.TeamComposition, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	doc = normalizeKeys(doc)

	canonical, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode response: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(compositionSchema),
		gojsonschema.NewBytesLoader(canonical),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			details = append(details, resultErr.String())
		}
		return nil, fmt.Errorf("response violates composition schema: %s", strings.Join(details, "; "))
	}

	var external externalComposition
	if err := json.Unmarshal(canonical, &external); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	poolByID := make(map[uuid.UUID]*types.EmployeeProfile, len(pool))
	for i := range pool {
		poolByID[pool[i].ID] = &pool[i]
	}

	composition := &types.TeamComposition{
		CompatibilityScore: external.CompatibilityScore,
		Source:             types.SourceGenerative,
	}

	leaderTeam := -1
	for teamIndex, team := range external.Teams {
		proposed := types.ProposedTeam{Name: team.Name}
		for _, member := range team.Members {
			memberID, err := uuid.Parse(member.ID)
			if err != nil {
				return nil, fmt.Errorf("member id %q is not a UUID", member.ID)
			}
			employee, ok := poolByID[memberID]
			if !ok {
				return nil, fmt.Errorf("member %s is not in the candidate pool", member.ID)
			}
			level := types.ExperienceLevel("")
			if member.Level != "" {
				parsed, err := types.ParseExperienceLevel(member.Level)
				if err != nil {
					return nil, fmt.Errorf("member %s: %w", member.ID, err)
				}
				level = parsed
			}
			name := member.Name
			if name == "" {
				name = employee.Name
			}
			proposed.Members = append(proposed.Members, types.ProposedMember{
				ID:    memberID,
				Name:  name,
				Role:  member.Role,
				Level: level,
			})
			if external.RecommendedLeader != nil && member.ID == external.RecommendedLeader.ID {
				leaderTeam = teamIndex
			}
		}
		composition.Teams = append(composition.Teams, proposed)
	}

	if external.RecommendedLeader == nil {
		return nil, fmt.Errorf("response carries no recommended leader")
	}
	if leaderTeam < 0 {
		return nil, fmt.Errorf("recommended leader %s is not on any returned team", external.RecommendedLeader.ID)
	}
	leaderID, err := uuid.Parse(external.RecommendedLeader.ID)
	if err != nil {
		return nil, fmt.Errorf("leader id %q is not a UUID", external.RecommendedLeader.ID)
	}
	leaderName := external.RecommendedLeader.Name
	if leaderName == "" {
		leaderName = poolByID[leaderID].Name
	}
	composition.Teams[leaderTeam].Leader = types.ProposedLeader{
		ID:        leaderID,
		Name:      leaderName,
		Rationale: external.RecommendedLeader.Rationale,
	}

	if external.TeamAnalysis != nil {
		composition.Teams[leaderTeam].Analysis = types.TeamAnalysis{
			Strengths:     external.TeamAnalysis.Strengths,
			Weaknesses:    external.TeamAnalysis.Weaknesses,
			Compatibility: external.TeamAnalysis.Compatibility,
		}
	}

	for _, note := range external.RecommendedMembers {
		noteID, err := uuid.Parse(note.ID)
		if err != nil {
			continue // commentary on an unknown candidate is dropped, not fatal
		}
		employee, ok := poolByID[noteID]
		if !ok {
			continue
		}
		name := note.Name
		if name == "" {
			name = employee.Name
		}
		composition.Candidates = append(composition.Candidates, types.CandidateNote{
			ID:                 noteID,
			Name:               name,
			CompatibilityScore: note.CompatibilityScore,
			Analysis:           note.Analysis,
			PotentialConflicts: note.PotentialConflicts,
			TeamImpact:         note.TeamImpact,
		})
	}

	return composition, nil
}

// normalizeKeys recursively rewrites every object key to snake_case so the
// adapter accepts camelCase and snake_case producers alike.
func normalizeKeys(doc any) any {
	switch value := doc.(type) {
	case map[string]any:
		normalized := make(map[string]any, len(value))
		for key, nested := range value {
			normalized[toSnakeCase(key)] = normalizeKeys(nested)
		}
		return normalized
	case []any:
		for i := range value {
			value[i] = normalizeKeys(value[i])
		}
		return value
	default:
		return doc
	}
}

// toSnakeCase converts camelCase to snake_case; keys already in
// snake_case pass through unchanged.
func toSnakeCase(key string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 && prev != '_' {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
