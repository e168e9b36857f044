// Package termrenderer implements vdom.Renderer on top of
// github.com/charmbracelet/lipgloss layout primitives, driven by a
// github.com/charmbracelet/bubbletea program (see Model). Grounded on
// the teacher's Wrap/autoWrapperModel and the render.go Lipgloss
// convenience wrappers, but the thing being wrapped is this core's
// native tree, not a single pre-rendered component.
package termrenderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/arborview/vdomx/pkg/vdom"
)

// Native type names this renderer understands. A host's component
// definitions choose these as the NativeType.Name of their native
// Views.
const (
	TypeVBox = "vbox"
	TypeHBox = "hbox"
	TypeText = "text"
)

// TextView is implemented by a text leaf's View so the renderer can
// read its content without depending on a concrete component package.
type TextView interface {
	Text() string
}

// StyledView is optionally implemented by any native View to attach a
// lipgloss.Style to its rendered box or text.
type StyledView interface {
	Style() lipgloss.Style
}

// node is the renderer's own bookkeeping for one native handle.
type node struct {
	typ      string
	text     string
	style    lipgloss.Style
	children []*node
	dispatch vdom.DispatchNativeEvent
}

// Renderer implements vdom.Renderer by maintaining a tree of nodes
// that View renders into a string via lipgloss.JoinVertical/
// JoinHorizontal.
type Renderer struct {
	mu   sync.Mutex
	root *node
}

// New creates a Renderer whose mount-root handle is the returned
// *node; pass it as Mount's handle argument.
func New() (*Renderer, vdom.NativeHandle) {
	root := &node{typ: TypeVBox}
	return &Renderer{root: root}, root
}

func asNode(h vdom.NativeHandle) *node { return h.(*node) }

func (r *Renderer) CreateComponent(nativeType vdom.NativeType, view vdom.View, dispatch vdom.DispatchNativeEvent) vdom.NativeHandle {
	n := &node{typ: nativeType.Name, dispatch: dispatch}
	applyView(n, view)
	return n
}

func (r *Renderer) UpdateComponent(nativeType vdom.NativeType, handle vdom.NativeHandle, view vdom.View, event *vdom.NativeEvent) vdom.NativeHandle {
	n := asNode(handle)
	r.mu.Lock()
	defer r.mu.Unlock()
	if event != nil {
		if ev, ok := view.(vdom.EventedView); ok {
			ev.HandleEvent(event.Attr, event.Payload)
		}
		return n
	}
	applyView(n, view)
	return n
}

func applyView(n *node, view vdom.View) {
	if t, ok := view.(TextView); ok {
		n.text = t.Text()
	}
	if s, ok := view.(StyledView); ok {
		n.style = s.Style()
	}
}

func (r *Renderer) AppendChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	p.children = append(p.children, asNode(childHandle))
}

func (r *Renderer) InsertChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	c := asNode(childHandle)
	if index >= len(p.children) {
		p.children = append(p.children, c)
		return
	}
	p.children = append(p.children, nil)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = c
}

func (r *Renderer) SwapChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, i, j int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	p.children[i], p.children[j] = p.children[j], p.children[i]
}

func (r *Renderer) ReplaceChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int, childType vdom.NativeType, childHandle vdom.NativeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	p.children[index] = asNode(childHandle)
}

func (r *Renderer) RemoveChild(parentType vdom.NativeType, parentHandle vdom.NativeHandle, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	p.children = append(p.children[:index], p.children[index+1:]...)
}

func (r *Renderer) TruncateChildren(parentType vdom.NativeType, parentHandle vdom.NativeHandle, newLen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := asNode(parentHandle)
	p.children = p.children[:newLen]
}

func (r *Renderer) Log(msg string) { fmt.Println("[termrenderer]", msg) }

// View renders the current tree to a string.
func (r *Renderer) View() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return render(r.root)
}

func render(n *node) string {
	if n == nil {
		return ""
	}
	switch n.typ {
	case TypeText:
		return n.style.Render(n.text)
	case TypeHBox:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = render(c)
		}
		return n.style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	default: // TypeVBox and the mount root
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = render(c)
		}
		return n.style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}
}

// dispatchKey delivers a key event to every node that registered a
// dispatcher, attr "key", depth-first. Most terminal components care
// about global key handling rather than focus-scoped delivery, so this
// renderer broadcasts rather than tracking a focused node.
func (r *Renderer) dispatchKey(payload string) {
	r.mu.Lock()
	root := r.root
	r.mu.Unlock()
	broadcast(root, "key", payload)
}

func broadcast(n *node, attr string, payload any) {
	if n == nil {
		return
	}
	if n.dispatch != nil {
		n.dispatch(attr, payload)
	}
	for _, c := range n.children {
		broadcast(c, attr, payload)
	}
}

var _ vdom.Renderer = (*Renderer)(nil)

// debugTree renders a bracketed outline of the tree, handy for
// TestMain diagnostics when a View assertion fails.
func (r *Renderer) debugTree() string {
	var b strings.Builder
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if n == nil {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.typ)
		if n.text != "" {
			b.WriteString(": " + n.text)
		}
		b.WriteByte('\n')
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	r.mu.Lock()
	walk(r.root, 0)
	r.mu.Unlock()
	return b.String()
}
