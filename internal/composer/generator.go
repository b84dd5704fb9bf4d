// Package composer orchestrates whole-team generation: delegation to a
// generative collaborator with a bounded timeout, and a deterministic
// rule-based assembly when that collaborator is unavailable.
package composer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/team-composer/internal/config"
	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/llm"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

// Catalog is the read-only slice of the persistence layer the generator
// depends on. *db.DB satisfies it.
type Catalog interface {
	ListEmployeesMatchingFilter(ctx context.Context, filter db.EmployeeFilter) ([]types.EmployeeProfile, error)
}

// Options carries the generation policy.
type Options struct {
	// Timeout bounds the generative collaborator call. Zero uses the
	// package default.
	Timeout time.Duration
	// RedundancyLevel is the role seniority at which overlapping role
	// claims on one roster are flagged as a potential conflict.
	RedundancyLevel types.ExperienceLevel
	// Verbose enables state-transition logging.
	Verbose bool
}

// Generator produces team compositions. A nil llm client disables
// delegation entirely: every request goes straight to the deterministic
// fallback.
type Generator struct {
	catalog Catalog
	ranker  *ranking.Ranker
	client  llm.Client
	opts    Options
}

// NewGenerator creates a Generator. client may be nil.
func NewGenerator(catalog Catalog, ranker *ranking.Ranker, client llm.Client, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultGenerationTimeout
	}
	if opts.RedundancyLevel == "" {
		opts.RedundancyLevel = types.LevelSenior
	}
	return &Generator{catalog: catalog, ranker: ranker, client: client, opts: opts}
}

// Generate runs one composition request through its state machine. The
// collaborator path is attempted first when configured; on timeout or any
// collaborator error the request falls back to the deterministic
// assembly. An error is returned only when the fallback cannot produce a
// roster either.
func (g *Generator) Generate(ctx context.Context, req *types.CompositionRequest) (*types.TeamComposition, error) {
	generation := newRun()

	if err := req.Validate(); err != nil {
		generation.advance(StateFailed)
		return nil, err
	}

	// The desired role shapes scoring and the delegation prompt, never
	// the pool: employees without the role claim remain candidates.
	pool, err := g.catalog.ListEmployeesMatchingFilter(ctx, db.EmployeeFilter{
		Area:  req.Area,
		Level: req.Level,
	})
	if err != nil {
		generation.advance(StateFailed)
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	if g.client != nil {
		generation.advance(StateDelegating)
		g.logState(generation)
		composition, err := g.delegate(ctx, req, pool)
		if err == nil {
			generation.advance(StateSucceeded)
			generation.advance(StateCompleted)
			g.logState(generation)
			return composition, nil
		}
		// Timeout or a malformed response: recover locally rather than
		// surfacing the collaborator failure to the caller.
		if g.opts.Verbose {
			log.Printf("generation %s: delegation failed, using fallback: %v", generation.id, err)
		}
		generation.advance(StateFallingBack)
	} else {
		generation.advance(StateFallingBack)
	}
	g.logState(generation)

	composition, err := g.assembleFallback(ctx, req, pool)
	if err != nil {
		generation.advance(StateFailed)
		g.logState(generation)
		return nil, err
	}
	generation.advance(StateCompleted)
	g.logState(generation)
	return composition, nil
}

// delegate calls the generative collaborator under the configured timeout
// and normalizes its response. The deadline is hard: on expiry the call
// returns immediately and the caller proceeds to the fallback, it never
// retries.
func (g *Generator) delegate(ctx context.Context, req *types.CompositionRequest, pool []types.EmployeeProfile) (*types.TeamComposition, error) {
	if len(pool) == 0 {
		return nil, &ErrExternalService{Err: fmt.Errorf("empty candidate pool")}
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	raw, err := g.client.GenerateJSON(ctx, buildPrompt(req, pool), llm.TierAdvanced)
	if err != nil {
		return nil, &ErrExternalService{Err: err}
	}

	composition, err := normalizeComposition(raw, pool)
	if err != nil {
		return nil, &ErrExternalService{Err: err}
	}
	return composition, nil
}

func (g *Generator) logState(generation *run) {
	if g.opts.Verbose {
		log.Printf("generation %s: state=%s", generation.id, generation.state)
	}
}
