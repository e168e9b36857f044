package vdom

import "sync"

// stateCell is a single heterogeneous state slot. It is always
// accessed through a pointer obtained once at insertion (see
// StateStore.getOrInsert), so its address never moves even as the
// owning StateStore grows — the realization of invariant I5.
type stateCell struct {
	mu    sync.RWMutex
	value any
	gen   Generation
}

// StateStore is the per-instance map of source-location -> state
// cell. Insertion is monotonic: entries are never removed while the
// owning instance lives (spec.md §3, Instance.state).
type StateStore struct {
	mu    sync.Mutex
	cells map[Location]*stateCell
}

func newStateStore() *StateStore {
	return &StateStore{cells: make(map[Location]*stateCell)}
}

// getOrInsert returns the cell at loc, creating it with initial() if
// absent. The returned pointer is stable for the lifetime of the
// store: later calls to getOrInsert for other locations only add map
// entries, they never relocate this cell's backing struct, because
// Go maps store the *stateCell pointer, not the stateCell value, in
// their buckets.
func (s *StateStore) getOrInsert(loc Location, gen Generation, initial func() any) *stateCell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cell, ok := s.cells[loc]; ok {
		return cell
	}
	cell := &stateCell{value: initial(), gen: gen}
	s.cells[loc] = cell
	return cell
}

// StateHandle is returned by UseState. Get reads the cell's current
// value as of the render that produced this handle; Set enqueues a
// mutation through the scheduler, per spec.md §4.3.
type StateHandle[T any] struct {
	cell *stateCell
	node NodeID
	vdom *VDom
}

// Get returns the cell's current value, taking a read lock so it does
// not race a concurrent Set drained on a later turn.
func (h StateHandle[T]) Get() T {
	h.cell.mu.RLock()
	defer h.cell.mu.RUnlock()
	return h.cell.value.(T)
}

// Updated reports whether this cell was last written at gen.
func (h StateHandle[T]) Updated(gen Generation) bool {
	h.cell.mu.RLock()
	defer h.cell.mu.RUnlock()
	return h.cell.gen == gen
}

// Set enqueues f against the cell via the scheduler. When drained, f
// is applied to the cell's current value, the cell is stamped with
// the generation active at drain time, the owning instance is marked
// dirty, and reconciliation of that instance is scheduled.
//
// Set never mutates the cell synchronously: the render that obtained
// this handle may still hold it under a read borrow, and the shared
// VDom container is held mutably by the reconciler for the duration
// of the current turn (§5) — deferring through the scheduler is what
// lets the mutation acquire the container on a later, uncontended
// turn.
func (h StateHandle[T]) Set(f func(T) T) {
	h.vdom.scheduler.Schedule(func() {
		h.vdom.withLock(func() {
			h.cell.mu.Lock()
			next := f(h.cell.value.(T))
			h.cell.value = next
			h.cell.gen = h.vdom.gen
			h.cell.mu.Unlock()
			h.vdom.markDirty(h.node)
		})
	})
}

// UseState is the state hook: given a render context and the
// call-site location captured by the component surface, returns the
// stable cell for that location (creating it with initial() on first
// use) wrapped as a typed StateHandle.
func UseState[T any](ctx RenderContext, loc Location, initial func() T) StateHandle[T] {
	cell := ctx.vdom.stateFor(ctx.node).getOrInsert(loc, ctx.gen, func() any { return initial() })
	return StateHandle[T]{cell: cell, node: ctx.node, vdom: ctx.vdom}
}
