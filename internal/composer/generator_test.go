package composer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/llm"
	"github.com/jonathan/team-composer/internal/matching"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

// staticCatalog serves a fixed pool regardless of filter; area filtering
// is exercised through the ranker in its own tests.
type staticCatalog []types.EmployeeProfile

func (c staticCatalog) ListEmployeesMatchingFilter(_ context.Context, _ db.EmployeeFilter) ([]types.EmployeeProfile, error) {
	return c, nil
}

// scriptedClient returns a canned response, an error, or blocks until the
// context expires.
type scriptedClient struct {
	response string
	err      error
	block    bool
	calls    int
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	c.calls++
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *scriptedClient) Close() error { return nil }

func generatorPool() []types.EmployeeProfile {
	return []types.EmployeeProfile{
		{
			ID: uuid.New(), Name: "Ana", Area: "platform",
			Technologies: []types.TechnologySkill{{Technology: "Go", Level: 5, YearsExperience: 7}},
			Roles:        []types.RoleClaim{{Role: "backend", Level: types.LevelSenior, Years: 7}},
		},
		{
			ID: uuid.New(), Name: "Bruno", Area: "platform",
			Technologies: []types.TechnologySkill{{Technology: "Go", Level: 3, YearsExperience: 3}},
			Roles:        []types.RoleClaim{{Role: "backend", Level: types.LevelMid, Years: 3}},
		},
	}
}

func compositionRequest() *types.CompositionRequest {
	return &types.CompositionRequest{
		Role:         "backend",
		Requirements: []types.RequiredTechnology{{Technology: "Go", MinimumLevel: 3}},
		TeamSize:     2,
	}
}

func newGenerator(pool []types.EmployeeProfile, client llm.Client, opts Options) *Generator {
	ranker := ranking.NewRanker(matching.NewScorer(matching.DefaultWeights()))
	return NewGenerator(staticCatalog(pool), ranker, client, opts)
}

func TestGenerate_DelegationSucceeds(t *testing.T) {
	pool := generatorPool()
	client := &scriptedClient{response: fmt.Sprintf(`{
		"teams": [{"members": [
			{"id": "%s", "name": "Ana", "role": "backend", "level": "senior"},
			{"id": "%s", "name": "Bruno", "role": "backend", "level": "mid"}
		]}],
		"recommendedLeader": {"id": "%s", "name": "Ana", "rationale": "Most senior"},
		"teamAnalysis": {"strengths": ["Go depth"], "weaknesses": [], "compatibility": "High"},
		"compatibilityScore": 88
	}`, pool[0].ID, pool[1].ID, pool[0].ID)}

	composition, err := newGenerator(pool, client, Options{}).Generate(context.Background(), compositionRequest())
	require.NoError(t, err)

	assert.Equal(t, types.SourceGenerative, composition.Source)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Ana", composition.Teams[0].Leader.Name)
}

func TestGenerate_TimeoutFallsBack(t *testing.T) {
	pool := generatorPool()
	client := &scriptedClient{block: true}

	composition, err := newGenerator(pool, client, Options{Timeout: 20 * time.Millisecond}).
		Generate(context.Background(), compositionRequest())
	require.NoError(t, err)

	// The collaborator hung past its deadline; the composition comes from
	// the deterministic fallback and still satisfies the leader invariant.
	assert.Equal(t, types.SourceFallback, composition.Source)
	require.Len(t, composition.Teams, 1)
	team := composition.Teams[0]
	leaderIsMember := false
	for _, member := range team.Members {
		if member.ID == team.Leader.ID {
			leaderIsMember = true
		}
	}
	assert.True(t, leaderIsMember)
}

func TestGenerate_MalformedResponseFallsBack(t *testing.T) {
	pool := generatorPool()
	client := &scriptedClient{response: `{"surprise": true}`}

	composition, err := newGenerator(pool, client, Options{}).Generate(context.Background(), compositionRequest())
	require.NoError(t, err)
	assert.Equal(t, types.SourceFallback, composition.Source)
}

func TestGenerate_NoClientUsesFallback(t *testing.T) {
	pool := generatorPool()
	composition, err := newGenerator(pool, nil, Options{}).Generate(context.Background(), compositionRequest())
	require.NoError(t, err)
	assert.Equal(t, types.SourceFallback, composition.Source)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	_, err := newGenerator(generatorPool(), nil, Options{}).Generate(context.Background(), &types.CompositionRequest{
		TeamSize: 0,
	})
	assert.Error(t, err)
}

func TestGenerate_EmptyPoolFails(t *testing.T) {
	// Both delegation and fallback are impossible: the failure is
	// reported, never an empty success.
	client := &scriptedClient{response: `{"teams": [{"members": [{"id": "x", "name": "y"}]}]}`}
	_, err := newGenerator(nil, client, Options{}).Generate(context.Background(), compositionRequest())

	var failed *ErrCompositionFailed
	require.ErrorAs(t, err, &failed)
}
