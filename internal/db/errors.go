package db

import "errors"

// Sentinel errors returned by membership transactions. Callers wrap these
// into their own error taxonomy; the db layer only names what the storage
// state contradicted.
var (
	// ErrEmployeeMissing means a referenced employee row does not exist.
	ErrEmployeeMissing = errors.New("employee does not exist")
	// ErrTeamMissing means a referenced team row does not exist.
	ErrTeamMissing = errors.New("team does not exist")
	// ErrAlreadyAssigned means an addition found the employee on a different
	// team at commit time.
	ErrAlreadyAssigned = errors.New("employee already assigned to another team")
	// ErrNotAssigned means a removal found the employee not on the expected
	// team at commit time.
	ErrNotAssigned = errors.New("employee is not a member of the team")
)
