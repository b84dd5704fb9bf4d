package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/team-composer/internal/composer"
	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/llm"
	"github.com/jonathan/team-composer/internal/matching"
	"github.com/jonathan/team-composer/internal/observability"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Generate a team composition",
	Long:  "Generates team composition proposals from a request file. The generative collaborator is used when GEMINI_API_KEY is set; otherwise, or whenever it fails, a deterministic local assembly produces the roster.",
	RunE:  runCompose,
}

var (
	composeConfigPath string
	composeRequest    string
	composeOutput     string
	composeNoLLM      bool
	composeVerbose    bool
)

func init() {
	composeCmd.Flags().StringVarP(&composeConfigPath, "config", "c", "", "Path to JSON config file")
	composeCmd.Flags().StringVarP(&composeRequest, "request", "r", "", "Path to input CompositionRequest JSON file (required)")
	composeCmd.Flags().StringVarP(&composeOutput, "out", "o", "", "Path to output TeamComposition JSON file (default: stdout)")
	composeCmd.Flags().BoolVar(&composeNoLLM, "no-llm", false, "Skip the generative collaborator, use the deterministic assembly only")
	composeCmd.Flags().BoolVarP(&composeVerbose, "verbose", "v", false, "Print state transitions and a formatted summary")

	if err := composeCmd.MarkFlagRequired("request"); err != nil {
		panic(fmt.Sprintf("failed to mark request flag as required: %v", err))
	}

	rootCmd.AddCommand(composeCmd)
}

func runCompose(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig(composeConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	requestContent, err := os.ReadFile(composeRequest)
	if err != nil {
		return fmt.Errorf("failed to read request file %s: %w", composeRequest, err)
	}
	var request types.CompositionRequest
	if err := json.Unmarshal(requestContent, &request); err != nil {
		return fmt.Errorf("failed to unmarshal composition request JSON: %w", err)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var client llm.Client
	if !composeNoLLM && cfg.APIKey != "" {
		client, err = llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
	}

	ranker := ranking.NewRanker(matching.NewScorer(matching.FromConfig(cfg)))
	generator := composer.NewGenerator(database, ranker, client, composer.Options{
		Timeout:         cfg.GenerationTimeoutDuration(),
		RedundancyLevel: cfg.RedundancyExperienceLevel(),
		Verbose:         composeVerbose || cfg.Verbose,
	})

	composition, err := generator.Generate(ctx, &request)
	if err != nil {
		return fmt.Errorf("failed to generate composition: %w", err)
	}

	if composeVerbose {
		observability.NewPrinter(os.Stderr).PrintComposition(composition)
	}

	return writeJSONOutput(composeOutput, composition)
}
