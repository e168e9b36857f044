package vdom

import (
	"sync"

	vdomerrors "github.com/arborview/vdomx/pkg/vdom/errors"
)

// Scheduler is the subset of scheduler.Scheduler the reconciler core
// depends on. Declared locally so callers can pass any compatible
// scheduler without importing the scheduler package's concrete type.
type Scheduler interface {
	Schedule(task func())
}

// VDom holds the data structures supporting one mounted reconciler
// instance: the node tree, the renderer, and the current generation.
// It is held behind a non-reentrant lock so that an accidental
// concurrent (or nested) mutable access — the "aliasing borrow of the
// shared VDom container during render" fatal condition of spec.md §7
// — is caught deterministically instead of racing silently, which is
// the idiomatic Go analogue of the original's RefCell-based runtime
// borrow checking.
type VDom struct {
	mu        sync.Mutex
	locked    bool
	tree      *tree
	renderer  Renderer
	scheduler Scheduler
	gen       Generation
	root      NodeID

	hooks turnHooks
}

// turnHooks lets optional MountOptions (metrics, breadcrumbs, devtools)
// observe turn boundaries and renderer calls without the core
// depending on any of those packages.
type turnHooks struct {
	beforeTurn func()
	afterTurn  func(dirtyCount int)
	onCall     func(op string)
}

// withLock runs fn with the VDom's lock held, panicking with
// AliasingBorrowError if the lock is already held by the current call
// stack (re-entrant acquisition attempt), matching the "render call
// holds the container mutably; hooks must not attempt a second
// mutable borrow" rule of spec.md §5.
func (v *VDom) withLock(fn func()) {
	v.mu.Lock()
	if v.locked {
		v.mu.Unlock()
		panic(&vdomerrors.AliasingBorrowError{NodeID: int(v.root)})
	}
	v.locked = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.locked = false
		v.mu.Unlock()
	}()

	fn()
}

func (v *VDom) stateFor(node NodeID) *StateStore {
	return v.tree.get(node).state
}

// markDirty sets the dirty flag on node and schedules its
// reconciliation. Called by StateHandle.Set once a mutation has been
// applied; ancestor propagation (I6) sets Dirty directly instead.
func (v *VDom) markDirty(node NodeID) {
	v.tree.get(node).Dirty = true
	v.scheduleReconcile(node)
}

// scheduleReconcile enqueues a reconciliation of node through the
// scheduler, so the actual update runs on a later, uncontended turn
// rather than nested inside the Set call.
func (v *VDom) scheduleReconcile(node NodeID) {
	v.scheduler.Schedule(func() {
		v.withLock(func() {
			if v.hooks.beforeTurn != nil {
				v.hooks.beforeTurn()
			}
			update(v, nil, node, v.gen, nil)
			v.gen++
			if v.hooks.afterTurn != nil {
				v.hooks.afterTurn(0)
			}
		})
	})
}

// Root is the handle returned by Mount. It owns the mounted VDom and
// exposes draining the scheduler and reading the children offset.
// Native events reach the tree through the DispatchNativeEvent
// closures handed to the renderer, not through Root.
type Root struct {
	vdom   *VDom
	offset int
}

// Drain runs the scheduler's Drain once, the host-provided UI-thread
// turn primitive (spec.md §4.4). Returns whether a task was run.
func (r *Root) Drain() bool {
	type drainer interface{ Drain() bool }
	if d, ok := r.vdom.scheduler.(drainer); ok {
		return d.Drain()
	}
	return false
}

// MountOption configures a Root at Mount time.
type MountOption func(*mountConfig)

type mountConfig struct {
	childrenOffset int
	beforeTurn     func()
	afterTurn      func(int)
	onCall         func(string)
}

// WithChildrenOffset configures how many pre-existing native siblings
// sit before the mount point in native_parent's own child list, so
// the reconciler's 0-based InsertChild indices never disturb them
// (the renderer, not the reconciler, is expected to add the offset;
// this option documents/records the contract value for host code that
// wants to read it back).
func WithChildrenOffset(n int) MountOption {
	return func(c *mountConfig) { c.childrenOffset = n }
}

// WithTurnHooks installs observers for turn boundaries and renderer
// calls, used by pkg/monitoring, pkg/observability and pkg/devtools
// to instrument a Root without the core importing any of them. A nil
// argument leaves the corresponding hook of an earlier option in
// place; a non-nil one replaces it. The core passes 0 as dirtyCount
// on every turn.
func WithTurnHooks(beforeTurn func(), afterTurn func(dirtyCount int), onCall func(op string)) MountOption {
	return func(c *mountConfig) {
		if beforeTurn != nil {
			c.beforeTurn = beforeTurn
		}
		if afterTurn != nil {
			c.afterTurn = afterTurn
		}
		if onCall != nil {
			c.onCall = onCall
		}
	}
}

// ChildrenOffset returns the configured pre-existing-siblings offset
// for r's mount point.
func (r *Root) ChildrenOffset() int { return r.offset }

// Mount creates a new UI tree rooted at nativeParent, with native
// handle handle, and renders child as nativeParent's child. handle is
// used as-is: CreateComponent is never called for the mount root,
// matching the original's "allow rooting an avalanche tree upon an
// existing UI component created externally".
func Mount(child, nativeParent View, handle NativeHandle, renderer Renderer, sched Scheduler, opts ...MountOption) (*Root, error) {
	cfg := mountConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	nativeType, ok := nativeParent.NativeType()
	if !ok {
		return nil, &vdomerrors.MissingNativeTypeError{What: "mount root"}
	}

	rootInst := newInstance(nativeParent)
	rootInst.NativeType = &nativeType
	rootInst.NativeHandle = handle

	t := newTree()
	rootID := t.newRoot(rootInst)

	v := &VDom{
		tree:      t,
		renderer:  renderer,
		scheduler: sched,
		gen:       1,
		root:      rootID,
	}
	v.hooks = turnHooks{beforeTurn: cfg.beforeTurn, afterTurn: cfg.afterTurn, onCall: cfg.onCall}

	childID := t.push(rootID, newInstance(child))

	v.withLock(func() {
		if v.hooks.beforeTurn != nil {
			v.hooks.beforeTurn()
		}
		generate(v, childID, Generation(0))
		nativeAppendChild(v, rootID, childID)
		v.gen++
		if v.hooks.afterTurn != nil {
			v.hooks.afterTurn(0)
		}
	})

	return &Root{vdom: v, offset: cfg.childrenOffset}, nil
}
