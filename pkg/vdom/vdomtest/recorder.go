// Package vdomtest provides a recording Renderer for exercising
// pkg/vdom's reconciler without a real host toolkit. It is analogous
// to the teacher's test helper surface, but the thing being recorded
// is renderer calls rather than component lifecycle hooks.
package vdomtest

import (
	"fmt"
	"sync"

	"github.com/arborview/vdomx/pkg/vdom"
)

// Call is one recorded Renderer invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Handle is the NativeHandle type produced by Recorder. It carries a
// stable identity so tests can assert on which logical node a call
// refers to, and a mutable Attrs snapshot updated on
// CreateComponent/UpdateComponent.
type Handle struct {
	ID    int
	Attrs any
}

// Texter is an optional interface a test View may implement so that
// Recorder can capture the rendered text payload of a CreateComponent
// or UpdateComponent call alongside the plain call log, without this
// package depending on any particular test fixture's concrete type.
type Texter interface {
	Text() string
}

// Recorder is a Renderer that appends every call to a log instead of
// driving a real UI toolkit. Safe for concurrent use, though the
// reconciler itself never calls it concurrently (§5).
type Recorder struct {
	mu          sync.Mutex
	calls       []Call
	nextID      int
	dispatchers map[int]vdom.DispatchNativeEvent
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Calls returns a snapshot of the calls recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset clears the call log without resetting the handle id counter,
// so handles recorded before a Reset remain distinguishable from ones
// minted after it.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) record(op string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) CreateComponent(nativeType vdom.NativeType, view vdom.View, dispatch vdom.DispatchNativeEvent) vdom.NativeHandle {
	r.mu.Lock()
	r.nextID++
	h := &Handle{ID: r.nextID}
	if dispatch != nil {
		if r.dispatchers == nil {
			r.dispatchers = make(map[int]vdom.DispatchNativeEvent)
		}
		r.dispatchers[h.ID] = dispatch
	}
	r.mu.Unlock()
	if t, ok := view.(Texter); ok {
		h.Attrs = t.Text()
		r.record("CreateComponent", nativeType.Name, h.ID, t.Text())
	} else {
		r.record("CreateComponent", nativeType.Name, h.ID)
	}
	return h
}

func (r *Recorder) UpdateComponent(nativeType vdom.NativeType, handle vdom.NativeHandle, view vdom.View, event *vdom.NativeEvent) vdom.NativeHandle {
	h := handle.(*Handle)
	var text string
	if t, ok := view.(Texter); ok {
		text = t.Text()
		h.Attrs = text
	}
	switch {
	case event != nil && text != "":
		r.record("UpdateComponent", nativeType.Name, h.ID, text, "event:"+event.Attr)
	case event != nil:
		r.record("UpdateComponent", nativeType.Name, h.ID, "event:"+event.Attr)
	case text != "":
		r.record("UpdateComponent", nativeType.Name, h.ID, text)
	default:
		r.record("UpdateComponent", nativeType.Name, h.ID)
	}
	return h
}

// Dispatch invokes the DispatchNativeEvent closure captured at
// CreateComponent time for the handle with the given id, simulating a
// platform event arriving on that native node. It panics if no such
// handle was ever created, matching this package's fail-fast test
// style.
func (r *Recorder) Dispatch(handleID int, attr string, payload any) {
	r.mu.Lock()
	d := r.dispatchers[handleID]
	r.mu.Unlock()
	if d == nil {
		panic(fmt.Sprintf("vdomtest: no dispatcher registered for handle %d", handleID))
	}
	d(attr, payload)
}

func (r *Recorder) AppendChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.record("AppendChild", parentHandle.(*Handle).ID, childHandle.(*Handle).ID)
}

func (r *Recorder) InsertChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.record("InsertChild", parentHandle.(*Handle).ID, index, childHandle.(*Handle).ID)
}

func (r *Recorder) SwapChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, i, j int) {
	r.record("SwapChildren", parentHandle.(*Handle).ID, i, j)
}

func (r *Recorder) ReplaceChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.record("ReplaceChild", parentHandle.(*Handle).ID, index, childHandle.(*Handle).ID)
}

func (r *Recorder) RemoveChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int) {
	r.record("RemoveChild", parentHandle.(*Handle).ID, index)
}

func (r *Recorder) TruncateChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, newLen int) {
	r.record("TruncateChildren", parentHandle.(*Handle).ID, newLen)
}

func (r *Recorder) Log(msg string) {
	r.record("Log", msg)
}

var _ vdom.Renderer = (*Recorder)(nil)
