package composer

import (
	"fmt"
	"strings"

	"github.com/jonathan/team-composer/internal/types"
)

// buildPrompt constructs the delegation prompt: the candidate pool as
// compact summaries, the constraints, and the exact JSON shape the
// adapter expects back.
func buildPrompt(req *types.CompositionRequest, pool []types.EmployeeProfile) string {
	var sb strings.Builder

	sb.WriteString("You are an expert engineering staffing assistant. ")
	sb.WriteString("Assemble the best possible project team from the candidate pool below, ")
	sb.WriteString("respecting the constraints exactly. Use ONLY candidates from the pool; ")
	sb.WriteString("never invent people or IDs.\n\n")

	sb.WriteString("Constraints:\n")
	if req.Role != "" {
		fmt.Fprintf(&sb, "- Target role: %s\n", req.Role)
	}
	if req.Area != "" {
		fmt.Fprintf(&sb, "- Area: %s\n", req.Area)
	}
	if req.Level != "" {
		fmt.Fprintf(&sb, "- Target level: %s\n", req.Level)
	}
	fmt.Fprintf(&sb, "- Team size: %d\n", req.TeamSize)
	sb.WriteString("- Required technologies (with minimum proficiency 1-5):\n")
	for _, r := range req.Requirements {
		fmt.Fprintf(&sb, "    - %s (minimum level %d)\n", r.Technology, r.MinimumLevel)
	}
	sb.WriteString("\nCandidate pool:\n")
	for _, employee := range pool {
		fmt.Fprintf(&sb, "- id=%s name=%q area=%s", employee.ID, employee.Name, employee.Area)
		if len(employee.Roles) > 0 {
			parts := make([]string, 0, len(employee.Roles))
			for _, role := range employee.Roles {
				parts = append(parts, fmt.Sprintf("%s %s (%.0fy)", role.Level, role.Role, role.Years))
			}
			fmt.Fprintf(&sb, " roles=[%s]", strings.Join(parts, ", "))
		}
		if len(employee.Technologies) > 0 {
			parts := make([]string, 0, len(employee.Technologies))
			for _, skill := range employee.Technologies {
				parts = append(parts, fmt.Sprintf("%s L%d/%.1fy", skill.Technology, skill.Level, skill.YearsExperience))
			}
			fmt.Fprintf(&sb, " technologies=[%s]", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`
Return ONLY valid JSON matching this exact structure:
{
  "teams": [{ "members": [{ "id": "uuid", "name": "string", "role": "string", "level": "junior|mid|senior" }] }],
  "recommended_leader": { "id": "uuid", "name": "string", "rationale": "string" },
  "team_analysis": { "strengths": ["string"], "weaknesses": ["string"], "compatibility": "string" },
  "compatibility_score": 0.0,
  "recommended_members": [{ "id": "uuid", "name": "string", "compatibility_score": 0.0, "analysis": "string", "potential_conflicts": ["string"], "team_impact": "string" }]
}

IMPORTANT:
- The recommended leader MUST be one of the team members.
- Every id MUST come from the candidate pool above.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.
`)

	return sb.String()
}
