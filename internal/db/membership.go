package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MembershipRemoval detaches an employee from the team they are expected
// to be on. The expectation is verified inside the transaction.
type MembershipRemoval struct {
	EmployeeID uuid.UUID
	FromTeamID uuid.UUID
}

// MembershipAddition attaches an employee to a team. The transaction
// verifies the employee is unassigned (or already on that same team, in
// which case the addition is a no-op).
type MembershipAddition struct {
	EmployeeID uuid.UUID
	ToTeamID   uuid.UUID
}

// MembershipChange is one transactional unit of membership mutation.
// Removals apply before additions, so a move of one employee between two
// teams is expressed as a removal plus an addition and commits atomically.
type MembershipChange struct {
	Removals  []MembershipRemoval
	Additions []MembershipAddition
}

// ApplyMembershipChange commits a membership change as a single
// transaction. Every affected employee row is locked and its current
// assignment re-checked at commit time; a stale expectation aborts the
// whole change with one of the sentinel errors, leaving no partial state.
func (db *DB) ApplyMembershipChange(ctx context.Context, change MembershipChange) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			// Rollback error does not overwrite the main error
			_ = rErr
		}
	}()

	// Verify target teams exist before touching employee rows.
	for _, addition := range change.Additions {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`,
			addition.ToTeamID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check team %s: %w", addition.ToTeamID, err)
		}
		if !exists {
			return fmt.Errorf("team %s: %w", addition.ToTeamID, ErrTeamMissing)
		}
	}

	for _, removal := range change.Removals {
		currentTeam, err := lockEmployeeTeam(ctx, tx, removal.EmployeeID)
		if err != nil {
			return err
		}
		if currentTeam == nil || *currentTeam != removal.FromTeamID {
			return fmt.Errorf("employee %s in team %s: %w",
				removal.EmployeeID, removal.FromTeamID, ErrNotAssigned)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE employees SET team_id = NULL WHERE id = $1`,
			removal.EmployeeID,
		); err != nil {
			return fmt.Errorf("failed to remove employee %s: %w", removal.EmployeeID, err)
		}
	}

	for _, addition := range change.Additions {
		currentTeam, err := lockEmployeeTeam(ctx, tx, addition.EmployeeID)
		if err != nil {
			return err
		}
		if currentTeam != nil {
			if *currentTeam == addition.ToTeamID {
				continue // already a member, idempotent
			}
			return fmt.Errorf("employee %s: %w", addition.EmployeeID, ErrAlreadyAssigned)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE employees SET team_id = $1 WHERE id = $2`,
			addition.ToTeamID, addition.EmployeeID,
		); err != nil {
			return fmt.Errorf("failed to add employee %s: %w", addition.EmployeeID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockEmployeeTeam locks one employee row and returns their current team.
func lockEmployeeTeam(ctx context.Context, tx pgx.Tx, employeeID uuid.UUID) (*uuid.UUID, error) {
	var teamID *uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT team_id FROM employees WHERE id = $1 FOR UPDATE`,
		employeeID,
	).Scan(&teamID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("employee %s: %w", employeeID, ErrEmployeeMissing)
		}
		return nil, fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return teamID, nil
}
