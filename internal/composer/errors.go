package composer

import "fmt"

// ErrExternalService indicates the generative collaborator failed or timed
// out. The generator recovers from it internally via the deterministic
// fallback; callers only see it wrapped inside ErrCompositionFailed when
// the fallback cannot help either.
type ErrExternalService struct {
	Err error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("generative collaborator failed: %v", e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCompositionFailed indicates neither delegation nor the deterministic
// fallback could produce a composition. It is always reported, never
// returned as an empty success.
type ErrCompositionFailed struct {
	Reason string
}

func (e *ErrCompositionFailed) Error() string {
	return fmt.Sprintf("composition failed: %s", e.Reason)
}
