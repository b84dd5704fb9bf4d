package types

import "fmt"

// ErrValidation indicates a malformed request: bad filter, empty
// requirement set, or an out-of-range field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
