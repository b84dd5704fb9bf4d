// Package membership owns the rule that an employee belongs to at most one
// team, and performs all membership mutation against the persistence layer.
package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/types"
)

// Store is the slice of the persistence layer the coordinator depends on.
// *db.DB satisfies it.
type Store interface {
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*types.EmployeeProfile, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*types.Team, error)
	GetTeamView(ctx context.Context, id uuid.UUID) (*types.TeamView, error)
	ApplyMembershipChange(ctx context.Context, change db.MembershipChange) error
}

// Coordinator performs add, remove, and move operations atomically. It is
// the sole writer of membership state: operations touching the same team
// serialize on a per-team lock, and the storage transaction re-checks
// exclusivity at commit time, so two concurrent operations can never both
// pass a check against stale state.
type Coordinator struct {
	store Store
	locks *teamLocks
}

// NewCoordinator creates a Coordinator over the given store.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store, locks: newTeamLocks()}
}

// AddMembers adds employees to a team. Employees already on that same team
// are a no-op; an employee on a different team fails the whole call with
// ErrMembershipConflict and no change is applied. Returns the updated
// team view on success.
func (c *Coordinator) AddMembers(ctx context.Context, teamID uuid.UUID, employeeIDs []uuid.UUID) (*types.TeamView, error) {
	release := c.locks.acquire(teamID)
	defer release()

	team, err := c.store.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, &ErrPersistence{Err: err}
	}
	if team == nil {
		return nil, &ErrTeamNotFound{TeamID: teamID}
	}

	change := db.MembershipChange{}
	for _, employeeID := range employeeIDs {
		employee, err := c.store.GetEmployeeByID(ctx, employeeID)
		if err != nil {
			return nil, &ErrPersistence{Err: err}
		}
		if employee == nil {
			return nil, &ErrEmployeeNotFound{EmployeeID: employeeID}
		}
		if employee.TeamID != nil {
			if *employee.TeamID == teamID {
				continue // already a member, idempotent
			}
			return nil, &ErrMembershipConflict{EmployeeID: employeeID, CurrentTeam: *employee.TeamID}
		}
		change.Additions = append(change.Additions, db.MembershipAddition{
			EmployeeID: employeeID,
			ToTeamID:   teamID,
		})
	}

	if len(change.Additions) > 0 {
		if err := c.store.ApplyMembershipChange(ctx, change); err != nil {
			return nil, c.wrapChangeError(err, teamID)
		}
	}

	return c.teamView(ctx, teamID)
}

// RemoveMember removes an employee from a team. Fails with ErrNotMember if
// the employee is not currently on that team. Returns the updated team view.
func (c *Coordinator) RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) (*types.TeamView, error) {
	release := c.locks.acquire(teamID)
	defer release()

	team, err := c.store.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, &ErrPersistence{Err: err}
	}
	if team == nil {
		return nil, &ErrTeamNotFound{TeamID: teamID}
	}
	if !team.HasMember(employeeID) {
		return nil, &ErrNotMember{TeamID: teamID, EmployeeID: employeeID}
	}

	change := db.MembershipChange{
		Removals: []db.MembershipRemoval{{EmployeeID: employeeID, FromTeamID: teamID}},
	}
	if err := c.store.ApplyMembershipChange(ctx, change); err != nil {
		return nil, c.wrapChangeError(err, teamID)
	}

	return c.teamView(ctx, teamID)
}

// MoveResult holds both updated team views after a successful move.
type MoveResult struct {
	Source *types.TeamView `json:"source"`
	Target *types.TeamView `json:"target"`
}

// MoveMember moves an employee between two teams as one indivisible unit:
// either the employee ends up only on the target team, or no change is
// observable at all.
func (c *Coordinator) MoveMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) (*MoveResult, error) {
	if sourceTeamID == targetTeamID {
		return nil, &types.ErrValidation{Field: "target_team_id", Message: "source and target team are the same"}
	}

	release := c.locks.acquire(sourceTeamID, targetTeamID)
	defer release()

	source, err := c.store.GetTeamByID(ctx, sourceTeamID)
	if err != nil {
		return nil, &ErrPersistence{Err: err}
	}
	if source == nil {
		return nil, &ErrTeamNotFound{TeamID: sourceTeamID}
	}
	target, err := c.store.GetTeamByID(ctx, targetTeamID)
	if err != nil {
		return nil, &ErrPersistence{Err: err}
	}
	if target == nil {
		return nil, &ErrTeamNotFound{TeamID: targetTeamID}
	}
	if !source.HasMember(employeeID) {
		return nil, &ErrNotMember{TeamID: sourceTeamID, EmployeeID: employeeID}
	}

	change := db.MembershipChange{
		Removals:  []db.MembershipRemoval{{EmployeeID: employeeID, FromTeamID: sourceTeamID}},
		Additions: []db.MembershipAddition{{EmployeeID: employeeID, ToTeamID: targetTeamID}},
	}
	if err := c.store.ApplyMembershipChange(ctx, change); err != nil {
		return nil, c.wrapChangeError(err, targetTeamID)
	}

	sourceView, err := c.teamView(ctx, sourceTeamID)
	if err != nil {
		return nil, err
	}
	targetView, err := c.teamView(ctx, targetTeamID)
	if err != nil {
		return nil, err
	}
	return &MoveResult{Source: sourceView, Target: targetView}, nil
}

// teamView fetches the post-change view of a team.
func (c *Coordinator) teamView(ctx context.Context, teamID uuid.UUID) (*types.TeamView, error) {
	view, err := c.store.GetTeamView(ctx, teamID)
	if err != nil {
		return nil, &ErrPersistence{Err: err}
	}
	if view == nil {
		return nil, &ErrTeamNotFound{TeamID: teamID}
	}
	return view, nil
}

// wrapChangeError maps the storage layer's commit-time re-check failures
// onto the caller-visible taxonomy.
func (c *Coordinator) wrapChangeError(err error, teamID uuid.UUID) error {
	switch {
	case errors.Is(err, db.ErrAlreadyAssigned):
		return &ErrMembershipConflict{}
	case errors.Is(err, db.ErrNotAssigned):
		return &ErrNotMember{TeamID: teamID}
	case errors.Is(err, db.ErrTeamMissing):
		return &ErrTeamNotFound{TeamID: teamID}
	case errors.Is(err, db.ErrEmployeeMissing):
		return &ErrEmployeeNotFound{}
	default:
		return &ErrPersistence{Err: fmt.Errorf("membership change failed: %w", err)}
	}
}
