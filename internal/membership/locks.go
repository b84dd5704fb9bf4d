package membership

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// teamLocks serializes membership operations per team identifier. Locks
// are acquired in sorted ID order so a move holding two locks can never
// deadlock against another move taking the same pair in reverse.
type teamLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newTeamLocks() *teamLocks {
	return &teamLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// acquire locks every listed team and returns the release function.
// Duplicate IDs are collapsed.
func (t *teamLocks) acquire(teamIDs ...uuid.UUID) func() {
	unique := make(map[uuid.UUID]bool, len(teamIDs))
	ordered := make([]uuid.UUID, 0, len(teamIDs))
	for _, id := range teamIDs {
		if !unique[id] {
			unique[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	held := make([]*sync.Mutex, 0, len(ordered))
	for _, id := range ordered {
		lock := t.lockFor(id)
		lock.Lock()
		held = append(held, lock)
	}

	return func() {
		// Release in reverse acquisition order.
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (t *teamLocks) lockFor(id uuid.UUID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[id] = lock
	}
	return lock
}
