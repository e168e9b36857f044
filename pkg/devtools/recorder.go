// Package devtools wraps a vdom.Renderer so a host can snapshot the
// live native tree and the turn-by-turn renderer-call history it
// produced, for postmortem inspection or for surfacing over MCP
// (pkg/devtools/mcp). Grounded on the teacher's devtools store/
// snapshot design, cut down to the single tree this core actually
// maintains.
package devtools

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arborview/vdomx/pkg/vdom"
)

// Node is an immutable snapshot of one native instance in the tree:
// its type, its renderer-owned handle, and its native children in
// order.
type Node struct {
	Type     vdom.NativeType `json:"type" yaml:"type"`
	Handle   any             `json:"handle" yaml:"handle"`
	Children []*Node         `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Type: n.Type, Handle: n.Handle, Children: make([]*Node, len(n.Children))}
	for i, c := range n.Children {
		cp.Children[i] = c.clone()
	}
	return cp
}

// Turn is one drained reconciler turn: how many renderer calls it
// emitted and what the tree looked like right after.
type Turn struct {
	ID        string    `json:"id" yaml:"id"`
	Index     uint64    `json:"index" yaml:"index"`
	CallCount int       `json:"call_count" yaml:"call_count"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Tree      *Node     `json:"tree" yaml:"tree"`
}

// liveNode is the mutable bookkeeping entry the Recorder keeps per
// live handle; Node is the read-only snapshot taken from it.
type liveNode struct {
	typ      vdom.NativeType
	handle   any
	children []any
}

// Recorder decorates a vdom.Renderer, forwarding every call to inner
// while reconstructing the native tree from the handle relationships
// those calls describe. It never rejects or alters a call.
type Recorder struct {
	inner    vdom.Renderer
	capacity int

	mu    sync.Mutex
	nodes map[any]*liveNode
	root  any

	turnIndex uint64
	callCount int
	turns     []Turn
}

// NewRecorder wraps inner, seeding the tree with the mount root's type
// and handle. capacity bounds how many turns are retained; values <= 0
// default to 100.
func NewRecorder(inner vdom.Renderer, rootType vdom.NativeType, rootHandle vdom.NativeHandle, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 100
	}
	r := &Recorder{
		inner:    inner,
		capacity: capacity,
		nodes:    make(map[any]*liveNode),
		root:     rootHandle,
		turns:    make([]Turn, 0, capacity),
	}
	r.nodes[rootHandle] = &liveNode{typ: rootType, handle: rootHandle}
	return r
}

// Hooks returns the vdom.MountOption wiring this recorder's turn
// boundaries into a Root.
func (r *Recorder) Hooks() vdom.MountOption {
	return vdom.WithTurnHooks(r.beforeTurn, r.afterTurn, r.onCall)
}

func (r *Recorder) beforeTurn() {
	r.mu.Lock()
	r.callCount = 0
	r.mu.Unlock()
}

func (r *Recorder) onCall(string) {
	r.mu.Lock()
	r.callCount++
	r.mu.Unlock()
}

func (r *Recorder) afterTurn(int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turnIndex++
	t := Turn{
		ID:        uuid.New().String(),
		Index:     r.turnIndex,
		CallCount: r.callCount,
		Timestamp: time.Now(),
		Tree:      r.snapshotLocked(),
	}
	if len(r.turns) >= r.capacity {
		copy(r.turns, r.turns[1:])
		r.turns[r.capacity-1] = t
		return
	}
	r.turns = append(r.turns, t)
}

// Snapshot returns the current tree, independent of turn history.
func (r *Recorder) Snapshot() *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() *Node {
	return r.buildNode(r.root)
}

func (r *Recorder) buildNode(handle any) *Node {
	live, ok := r.nodes[handle]
	if !ok {
		return nil
	}
	n := &Node{Type: live.typ, Handle: live.handle, Children: make([]*Node, 0, len(live.children))}
	for _, c := range live.children {
		if child := r.buildNode(c); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Turns returns a defensive copy of the retained turn history, oldest
// first.
func (r *Recorder) Turns() []Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Turn, len(r.turns))
	for i, t := range r.turns {
		t.Tree = t.Tree.clone()
		out[i] = t
	}
	return out
}

func (r *Recorder) CreateComponent(nativeType vdom.NativeType, view vdom.View, dispatch vdom.DispatchNativeEvent) vdom.NativeHandle {
	handle := r.inner.CreateComponent(nativeType, view, dispatch)
	r.mu.Lock()
	r.nodes[handle] = &liveNode{typ: nativeType, handle: handle}
	r.mu.Unlock()
	return handle
}

func (r *Recorder) UpdateComponent(nativeType vdom.NativeType, handle vdom.NativeHandle, view vdom.View, event *vdom.NativeEvent) vdom.NativeHandle {
	return r.inner.UpdateComponent(nativeType, handle, view, event)
}

func (r *Recorder) AppendChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.inner.AppendChild(parentType, parentHandle, childType, childHandle)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok {
		p.children = append(p.children, childHandle)
	}
	r.mu.Unlock()
}

func (r *Recorder) InsertChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.inner.InsertChild(parentType, parentHandle, index, childType, childHandle)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok {
		p.children = insertAt(p.children, index, childHandle)
	}
	r.mu.Unlock()
}

func (r *Recorder) SwapChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, i, j int) {
	r.inner.SwapChildren(parentType, parentHandle, i, j)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok && i >= 0 && j >= 0 && i < len(p.children) && j < len(p.children) {
		p.children[i], p.children[j] = p.children[j], p.children[i]
	}
	r.mu.Unlock()
}

func (r *Recorder) ReplaceChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.inner.ReplaceChild(parentType, parentHandle, index, childType, childHandle)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok && index >= 0 && index < len(p.children) {
		p.children[index] = childHandle
	}
	r.mu.Unlock()
}

func (r *Recorder) RemoveChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int) {
	r.inner.RemoveChild(parentType, parentHandle, index)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok && index >= 0 && index < len(p.children) {
		p.children = append(p.children[:index], p.children[index+1:]...)
	}
	r.mu.Unlock()
}

func (r *Recorder) TruncateChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, newLen int) {
	r.inner.TruncateChildren(parentType, parentHandle, newLen)
	r.mu.Lock()
	if p, ok := r.nodes[parentHandle]; ok && newLen >= 0 && newLen <= len(p.children) {
		p.children = p.children[:newLen]
	}
	r.mu.Unlock()
}

func (r *Recorder) Log(msg string) { r.inner.Log(msg) }

func insertAt(s []any, index int, v any) []any {
	if index >= len(s) {
		return append(s, v)
	}
	s = append(s, nil)
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}

var _ vdom.Renderer = (*Recorder)(nil)
