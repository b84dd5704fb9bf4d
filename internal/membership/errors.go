package membership

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrTeamNotFound indicates a referenced team does not exist.
type ErrTeamNotFound struct {
	TeamID uuid.UUID
}

func (e *ErrTeamNotFound) Error() string {
	return fmt.Sprintf("team not found: %s", e.TeamID)
}

// ErrEmployeeNotFound indicates a referenced employee does not exist.
type ErrEmployeeNotFound struct {
	EmployeeID uuid.UUID
}

func (e *ErrEmployeeNotFound) Error() string {
	return fmt.Sprintf("employee not found: %s", e.EmployeeID)
}

// ErrNotMember indicates the employee is not currently a member of the
// team an operation required them to be on.
type ErrNotMember struct {
	TeamID     uuid.UUID
	EmployeeID uuid.UUID
}

func (e *ErrNotMember) Error() string {
	return fmt.Sprintf("employee %s is not a member of team %s", e.EmployeeID, e.TeamID)
}

// ErrMembershipConflict indicates an add or move would violate membership
// exclusivity: the employee already belongs to a different team.
type ErrMembershipConflict struct {
	EmployeeID  uuid.UUID
	CurrentTeam uuid.UUID
}

func (e *ErrMembershipConflict) Error() string {
	return fmt.Sprintf("employee %s already belongs to team %s", e.EmployeeID, e.CurrentTeam)
}

// ErrPersistence wraps a storage failure. The operation is considered not
// applied.
type ErrPersistence struct {
	Err error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}
