package composer

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the phase of one generation request.
type State string

// Generation states. Completed and Failed are terminal.
const (
	StateRequested   State = "requested"
	StateDelegating  State = "delegating"
	StateSucceeded   State = "succeeded"
	StateFallingBack State = "falling_back"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

// legalTransitions models the request lifecycle: a validated request
// delegates (or falls back directly when no collaborator is configured),
// delegation either succeeds or falls back, and both routes end in a
// terminal state.
var legalTransitions = map[State][]State{
	StateRequested:   {StateDelegating, StateFallingBack, StateFailed},
	StateDelegating:  {StateSucceeded, StateFallingBack},
	StateSucceeded:   {StateCompleted},
	StateFallingBack: {StateCompleted, StateFailed},
}

// run tracks one generation request through its state machine.
type run struct {
	id    uuid.UUID
	state State
}

func newRun() *run {
	return &run{id: uuid.New(), state: StateRequested}
}

// advance moves the run to the next state, panicking on an illegal
// transition: that is a programming error, never an input condition.
func (r *run) advance(to State) {
	for _, allowed := range legalTransitions[r.state] {
		if allowed == to {
			r.state = to
			return
		}
	}
	panic(fmt.Sprintf("illegal generation state transition %s -> %s", r.state, to))
}

// terminal reports whether the run has finished.
func (r *run) terminal() bool {
	return r.state == StateCompleted || r.state == StateFailed
}
