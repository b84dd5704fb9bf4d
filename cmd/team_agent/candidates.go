package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/matching"
	"github.com/jonathan/team-composer/internal/observability"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Rank candidates for a team",
	Long:  "Ranks every eligible employee against a team's required technologies, producing a deterministic candidate list sorted by compatibility score.",
	RunE:  runCandidates,
}

var (
	candidatesConfigPath   string
	candidatesTeamID       string
	candidatesRole         string
	candidatesArea         string
	candidatesLevel        string
	candidatesTechnologies string
	candidatesOutput       string
	candidatesVerbose      bool
)

func init() {
	candidatesCmd.Flags().StringVarP(&candidatesConfigPath, "config", "c", "", "Path to JSON config file")
	candidatesCmd.Flags().StringVarP(&candidatesTeamID, "team", "t", "", "Team ID to rank candidates for (required)")
	candidatesCmd.Flags().StringVar(&candidatesRole, "role", "", "Desired role for the role bonus")
	candidatesCmd.Flags().StringVar(&candidatesArea, "area", "", "Area filter (defaults to the team's area)")
	candidatesCmd.Flags().StringVar(&candidatesLevel, "level", "", "Desired experience level (junior, mid, senior)")
	candidatesCmd.Flags().StringVar(&candidatesTechnologies, "technologies", "", "Comma-separated technology filter for the pool")
	candidatesCmd.Flags().StringVarP(&candidatesOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	candidatesCmd.Flags().BoolVarP(&candidatesVerbose, "verbose", "v", false, "Print a formatted summary to stderr")

	if err := candidatesCmd.MarkFlagRequired("team"); err != nil {
		panic(fmt.Sprintf("failed to mark team flag as required: %v", err))
	}

	rootCmd.AddCommand(candidatesCmd)
}

func runCandidates(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig(candidatesConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	teamID, err := uuid.Parse(candidatesTeamID)
	if err != nil {
		return fmt.Errorf("invalid team ID %q: %w", candidatesTeamID, err)
	}

	var level types.ExperienceLevel
	if candidatesLevel != "" {
		level, err = types.ParseExperienceLevel(candidatesLevel)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	team, err := database.GetTeamByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return fmt.Errorf("team %s not found", teamID)
	}

	area := candidatesArea
	if area == "" {
		area = team.Area
	}
	// Role feeds the scoring bonus only; it never narrows the pool.
	pool, err := database.ListEmployeesMatchingFilter(ctx, db.EmployeeFilter{
		Area:         area,
		Level:        level,
		Technologies: splitTechnologies(candidatesTechnologies),
	})
	if err != nil {
		return fmt.Errorf("failed to load candidate pool: %w", err)
	}

	ranker := ranking.NewRanker(matching.NewScorer(matching.FromConfig(cfg)))
	candidates, err := ranker.Rank(ctx, pool, team.Requirements, ranking.Filter{
		Role:        candidatesRole,
		Area:        area,
		Level:       level,
		ExcludeTeam: team,
	})
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}

	if candidatesVerbose {
		observability.NewPrinter(os.Stderr).PrintRanking(candidates)
	}

	return writeJSONOutput(candidatesOutput, candidates)
}

// splitTechnologies parses a comma-separated technology list, trimming
// whitespace and dropping empty entries.
func splitTechnologies(raw string) []string {
	if raw == "" {
		return nil
	}
	var technologies []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			technologies = append(technologies, trimmed)
		}
	}
	return technologies
}

// writeJSONOutput marshals v with indentation and writes it to path, or
// to stdout when path is empty.
func writeJSONOutput(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
