package membership

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/types"
)

// fakeStore is an in-memory Store mimicking the storage transaction's
// semantics: membership changes validate against current state and apply
// all-or-nothing.
type fakeStore struct {
	mu        sync.Mutex
	employees map[uuid.UUID]*types.EmployeeProfile
	teams     map[uuid.UUID]*types.Team
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: make(map[uuid.UUID]*types.EmployeeProfile),
		teams:     make(map[uuid.UUID]*types.Team),
	}
}

func (f *fakeStore) addEmployee(name string) uuid.UUID {
	id := uuid.New()
	f.employees[id] = &types.EmployeeProfile{ID: id, Name: name, Area: "platform"}
	return id
}

func (f *fakeStore) addTeam(name string) uuid.UUID {
	id := uuid.New()
	f.teams[id] = &types.Team{ID: id, Name: name, Area: "platform"}
	return id
}

func (f *fakeStore) GetEmployeeByID(_ context.Context, id uuid.UUID) (*types.EmployeeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	snapshot := *employee
	return &snapshot, nil
}

func (f *fakeStore) GetTeamByID(_ context.Context, id uuid.UUID) (*types.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	snapshot := *team
	snapshot.MemberIDs = append([]uuid.UUID(nil), team.MemberIDs...)
	return &snapshot, nil
}

func (f *fakeStore) GetTeamView(_ context.Context, id uuid.UUID) (*types.TeamView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	view := &types.TeamView{ID: team.ID, Name: team.Name, Area: team.Area, LeaderID: team.LeaderID}
	for _, memberID := range team.MemberIDs {
		view.Members = append(view.Members, types.MemberSummary{
			ID:   memberID,
			Name: f.employees[memberID].Name,
			Area: f.employees[memberID].Area,
		})
	}
	return view, nil
}

func (f *fakeStore) ApplyMembershipChange(_ context.Context, change db.MembershipChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Validate the whole change before mutating anything.
	pending := make(map[uuid.UUID]*uuid.UUID)
	current := func(employeeID uuid.UUID) (*uuid.UUID, error) {
		if teamID, ok := pending[employeeID]; ok {
			return teamID, nil
		}
		employee, ok := f.employees[employeeID]
		if !ok {
			return nil, db.ErrEmployeeMissing
		}
		return employee.TeamID, nil
	}

	for _, addition := range change.Additions {
		if _, ok := f.teams[addition.ToTeamID]; !ok {
			return db.ErrTeamMissing
		}
	}
	for _, removal := range change.Removals {
		teamID, err := current(removal.EmployeeID)
		if err != nil {
			return err
		}
		if teamID == nil || *teamID != removal.FromTeamID {
			return db.ErrNotAssigned
		}
		pending[removal.EmployeeID] = nil
	}
	for _, addition := range change.Additions {
		teamID, err := current(addition.EmployeeID)
		if err != nil {
			return err
		}
		if teamID != nil {
			if *teamID == addition.ToTeamID {
				continue
			}
			return db.ErrAlreadyAssigned
		}
		target := addition.ToTeamID
		pending[addition.EmployeeID] = &target
	}

	// Commit.
	for employeeID, teamID := range pending {
		employee := f.employees[employeeID]
		if employee.TeamID != nil {
			f.removeFromTeam(*employee.TeamID, employeeID)
		}
		employee.TeamID = teamID
		if teamID != nil {
			team := f.teams[*teamID]
			team.MemberIDs = append(team.MemberIDs, employeeID)
		}
	}
	return nil
}

func (f *fakeStore) removeFromTeam(teamID, employeeID uuid.UUID) {
	team := f.teams[teamID]
	for i, id := range team.MemberIDs {
		if id == employeeID {
			team.MemberIDs = append(team.MemberIDs[:i], team.MemberIDs[i+1:]...)
			return
		}
	}
}

// teamOf returns the employee's current team, if any.
func (f *fakeStore) teamOf(employeeID uuid.UUID) *uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.employees[employeeID].TeamID
}

// membershipCount counts how many teams list the employee as a member.
func (f *fakeStore) membershipCount(employeeID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, team := range f.teams {
		for _, id := range team.MemberIDs {
			if id == employeeID {
				count++
			}
		}
	}
	return count
}

func TestAddMembers(t *testing.T) {
	store := newFakeStore()
	teamID := store.addTeam("Platform")
	employeeID := store.addEmployee("Ana")

	coordinator := NewCoordinator(store)
	view, err := coordinator.AddMembers(context.Background(), teamID, []uuid.UUID{employeeID})
	require.NoError(t, err)
	require.Len(t, view.Members, 1)
	assert.Equal(t, employeeID, view.Members[0].ID)
}

func TestAddMembers_Idempotent(t *testing.T) {
	store := newFakeStore()
	teamID := store.addTeam("Platform")
	employeeID := store.addEmployee("Ana")
	coordinator := NewCoordinator(store)

	first, err := coordinator.AddMembers(context.Background(), teamID, []uuid.UUID{employeeID})
	require.NoError(t, err)
	second, err := coordinator.AddMembers(context.Background(), teamID, []uuid.UUID{employeeID})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.membershipCount(employeeID))
}

func TestAddMembers_ConflictWithOtherTeam(t *testing.T) {
	store := newFakeStore()
	teamA := store.addTeam("A")
	teamB := store.addTeam("B")
	employeeID := store.addEmployee("Ana")
	coordinator := NewCoordinator(store)

	_, err := coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
	require.NoError(t, err)

	_, err = coordinator.AddMembers(context.Background(), teamB, []uuid.UUID{employeeID})
	var conflict *ErrMembershipConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, teamA, conflict.CurrentTeam)

	// The failed add left state untouched.
	require.NotNil(t, store.teamOf(employeeID))
	assert.Equal(t, teamA, *store.teamOf(employeeID))
}

func TestAddMembers_TeamNotFound(t *testing.T) {
	store := newFakeStore()
	employeeID := store.addEmployee("Ana")

	_, err := NewCoordinator(store).AddMembers(context.Background(), uuid.New(), []uuid.UUID{employeeID})
	var notFound *ErrTeamNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestAddMembers_EmployeeNotFound(t *testing.T) {
	store := newFakeStore()
	teamID := store.addTeam("Platform")

	_, err := NewCoordinator(store).AddMembers(context.Background(), teamID, []uuid.UUID{uuid.New()})
	var notFound *ErrEmployeeNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestRemoveMember(t *testing.T) {
	store := newFakeStore()
	teamID := store.addTeam("Platform")
	employeeID := store.addEmployee("Ana")
	coordinator := NewCoordinator(store)

	_, err := coordinator.AddMembers(context.Background(), teamID, []uuid.UUID{employeeID})
	require.NoError(t, err)

	view, err := coordinator.RemoveMember(context.Background(), teamID, employeeID)
	require.NoError(t, err)
	assert.Empty(t, view.Members)
	assert.Nil(t, store.teamOf(employeeID))
}

func TestRemoveMember_NotMember(t *testing.T) {
	store := newFakeStore()
	teamID := store.addTeam("Platform")
	employeeID := store.addEmployee("Ana")

	_, err := NewCoordinator(store).RemoveMember(context.Background(), teamID, employeeID)
	var notMember *ErrNotMember
	assert.ErrorAs(t, err, &notMember)
}

func TestMoveMember(t *testing.T) {
	store := newFakeStore()
	teamA := store.addTeam("A")
	teamB := store.addTeam("B")
	employeeID := store.addEmployee("Ana")
	coordinator := NewCoordinator(store)

	_, err := coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
	require.NoError(t, err)

	result, err := coordinator.MoveMember(context.Background(), teamA, teamB, employeeID)
	require.NoError(t, err)

	assert.Empty(t, result.Source.Members)
	require.Len(t, result.Target.Members, 1)
	assert.Equal(t, employeeID, result.Target.Members[0].ID)
	assert.Equal(t, 1, store.membershipCount(employeeID))
}

func TestMoveMember_TargetMissing_LeavesSourceIntact(t *testing.T) {
	store := newFakeStore()
	teamA := store.addTeam("A")
	employeeID := store.addEmployee("Ana")
	coordinator := NewCoordinator(store)

	_, err := coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
	require.NoError(t, err)

	_, err = coordinator.MoveMember(context.Background(), teamA, uuid.New(), employeeID)
	var notFound *ErrTeamNotFound
	require.ErrorAs(t, err, &notFound)

	// The failed move is not observable: the employee is still on the source.
	require.NotNil(t, store.teamOf(employeeID))
	assert.Equal(t, teamA, *store.teamOf(employeeID))
}

func TestMoveMember_NotMemberOfSource(t *testing.T) {
	store := newFakeStore()
	teamA := store.addTeam("A")
	teamB := store.addTeam("B")
	employeeID := store.addEmployee("Ana")

	_, err := NewCoordinator(store).MoveMember(context.Background(), teamA, teamB, employeeID)
	var notMember *ErrNotMember
	assert.ErrorAs(t, err, &notMember)
}

func TestMoveMember_SameTeam(t *testing.T) {
	store := newFakeStore()
	teamA := store.addTeam("A")
	employeeID := store.addEmployee("Ana")

	_, err := NewCoordinator(store).MoveMember(context.Background(), teamA, teamA, employeeID)
	var validationErr *types.ErrValidation
	assert.ErrorAs(t, err, &validationErr)
}

func TestExclusivity_ConcurrentMoveAndAdd(t *testing.T) {
	// A move from A to B racing an add back onto A must never leave the
	// employee on two teams.
	for i := 0; i < 50; i++ {
		store := newFakeStore()
		teamA := store.addTeam("A")
		teamB := store.addTeam("B")
		employeeID := store.addEmployee("Ana")
		coordinator := NewCoordinator(store)

		_, err := coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = coordinator.MoveMember(context.Background(), teamA, teamB, employeeID)
		}()
		go func() {
			defer wg.Done()
			_, _ = coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
		}()
		wg.Wait()

		assert.Equal(t, 1, store.membershipCount(employeeID),
			"employee must belong to exactly one team after racing operations")
	}
}

func TestExclusivity_ConcurrentAddsToDifferentTeams(t *testing.T) {
	for i := 0; i < 50; i++ {
		store := newFakeStore()
		teamA := store.addTeam("A")
		teamB := store.addTeam("B")
		employeeID := store.addEmployee("Ana")
		coordinator := NewCoordinator(store)

		var wg sync.WaitGroup
		results := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, results[0] = coordinator.AddMembers(context.Background(), teamA, []uuid.UUID{employeeID})
		}()
		go func() {
			defer wg.Done()
			_, results[1] = coordinator.AddMembers(context.Background(), teamB, []uuid.UUID{employeeID})
		}()
		wg.Wait()

		// Exactly one of the two adds can claim the employee.
		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, store.membershipCount(employeeID))
	}
}
