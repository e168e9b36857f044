package observability

import (
	"sync"
	"time"

	"github.com/arborview/vdomx/pkg/vdom"
)

// TurnRecord is one entry in a TurnRecorder's trail: what a single
// drained turn did, for postmortem debugging after a crash.
type TurnRecord struct {
	Turn       uint64
	DirtyCount int
	CallCount  int
	Timestamp  time.Time
}

// TurnRecorder is a bounded circular buffer of the last N reconciler
// turns, recording the turn index, the dirty count passed to the
// after-turn hook, and how many renderer calls the turn emitted. Wired
// in via Hooks, which returns a vdom.MountOption built on
// vdom.WithTurnHooks. pkg/vdom passes 0 as the dirty count on every
// turn, so DirtyCount is 0 for turns recorded from a mounted Root.
type TurnRecorder struct {
	mu       sync.Mutex
	capacity int
	items    []TurnRecord
	turn     uint64
	calls    int
}

// NewTurnRecorder creates a recorder retaining at most capacity turns.
func NewTurnRecorder(capacity int) *TurnRecorder {
	if capacity <= 0 {
		capacity = MaxBreadcrumbs
	}
	return &TurnRecorder{capacity: capacity, items: make([]TurnRecord, 0, capacity)}
}

// Turns returns a defensive copy of the trail, oldest first.
func (r *TurnRecorder) Turns() []TurnRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TurnRecord, len(r.items))
	copy(out, r.items)
	return out
}

// Hooks returns the vdom.MountOption wiring this recorder into a
// Root's turn boundaries and renderer calls.
func (r *TurnRecorder) Hooks() vdom.MountOption {
	return vdom.WithTurnHooks(r.beforeTurn, r.afterTurn, r.onCall)
}

func (r *TurnRecorder) beforeTurn() {
	r.mu.Lock()
	r.calls = 0
	r.mu.Unlock()
}

func (r *TurnRecorder) onCall(string) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *TurnRecorder) afterTurn(dirtyCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turn++
	rec := TurnRecord{Turn: r.turn, DirtyCount: dirtyCount, CallCount: r.calls, Timestamp: time.Now()}
	if len(r.items) >= r.capacity {
		copy(r.items, r.items[1:])
		r.items[r.capacity-1] = rec
		return
	}
	r.items = append(r.items, rec)
}
