// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/team-composer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRanking outputs the top ranked candidates with scores and matched
// technologies.
func (p *Printer) PrintRanking(candidates []types.CandidateScore) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		candidate := candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, candidate.EmployeeName))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", candidate.Score))
		if candidate.RoleMatch != types.RoleMatchNone {
			sb.WriteString(fmt.Sprintf(" (role: %s)", candidate.RoleMatch))
		}
		sb.WriteString("\n")
		if candidate.MatchedTechnologies > 0 {
			total := candidate.MatchedTechnologies + candidate.UnmatchedRequirements
			sb.WriteString(fmt.Sprintf("    Matched: %d of %d requirements\n", candidate.MatchedTechnologies, total))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(candidates)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComposition outputs a human-readable summary of a generated
// composition: each roster, its leader, and the analysis highlights.
func (p *Printer) PrintComposition(composition *types.TeamComposition) {
	if composition == nil || len(composition.Teams) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", composition.Source))
	if composition.CompatibilityScore > 0 {
		sb.WriteString(fmt.Sprintf("Compatibility: %.1f\n", composition.CompatibilityScore))
	}
	sb.WriteString("\n")

	for i, team := range composition.Teams {
		name := team.Name
		if name == "" {
			name = fmt.Sprintf("Team %d", i+1)
		}
		sb.WriteString(fmt.Sprintf("%s (%d members)\n", name, len(team.Members)))
		sb.WriteString(fmt.Sprintf("  Leader: %s\n", team.Leader.Name))

		count := min(len(team.Members), maxItemsToShow)
		for j := 0; j < count; j++ {
			member := team.Members[j]
			sb.WriteString(fmt.Sprintf("  • %s", member.Name))
			if member.Role != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", member.Role))
			}
			sb.WriteString("\n")
		}
		if len(team.Members) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(team.Members)-maxItemsToShow))
		}

		if len(team.Analysis.Strengths) > 0 {
			sb.WriteString(fmt.Sprintf("  Strengths:  %d noted\n", len(team.Analysis.Strengths)))
		}
		if len(team.Analysis.Weaknesses) > 0 {
			sb.WriteString(fmt.Sprintf("  Weaknesses: %d noted\n", len(team.Analysis.Weaknesses)))
		}
		if i < len(composition.Teams)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEAM COMPOSITION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the narrative analysis of one proposed team.
func (p *Printer) PrintAnalysis(analysis *types.TeamAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	if len(analysis.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		for _, item := range analysis.Strengths {
			sb.WriteString(fmt.Sprintf("  + %s\n", item))
		}
	}
	if len(analysis.Weaknesses) > 0 {
		sb.WriteString("Weaknesses:\n")
		for _, item := range analysis.Weaknesses {
			sb.WriteString(fmt.Sprintf("  - %s\n", item))
		}
	}
	if analysis.Compatibility != "" {
		sb.WriteString(fmt.Sprintf("Compatibility: %s\n", analysis.Compatibility))
	}
	if sb.Len() == 0 {
		return
	}

	p.printBox("TEAM ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
