package vdom

import vdomerrors "github.com/arborview/vdomx/pkg/vdom/errors"

// NodeID identifies a node within a tree for the lifetime of the tree
// it belongs to. Ids are never reused: once allocated, an id is never
// handed out again even after the node it named is removed, so a
// stale NodeID held past a RemoveChild is detectably invalid rather
// than silently aliasing a new node.
type NodeID int

const invalidNodeID NodeID = -1

type treeNode struct {
	instance *Instance
	parent   NodeID
	children []NodeID
	removed  bool
}

// tree is an arena-backed ordered n-ary tree with stable node ids. It
// is unexported: reconciler.go and vdom.go are the only consumers
// within the package, matching the original source's "use only by
// renderer implementation libraries" scoping (here: only by the
// reconciler itself).
type tree struct {
	nodes []treeNode
}

func newTree() *tree {
	return &tree{}
}

// newRoot allocates a root node with no parent and returns its id.
func (t *tree) newRoot(inst *Instance) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{instance: inst, parent: invalidNodeID})
	return id
}

// push appends a new child under parent, returning the new child's id.
func (t *tree) push(parent NodeID, inst *Instance) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{instance: inst, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

func (t *tree) get(id NodeID) *Instance {
	return t.nodes[id].instance
}

// child returns the id of parent's i-th child.
func (t *tree) child(parent NodeID, i int) NodeID {
	return t.nodes[parent].children[i]
}

// iter returns the ordered list of parent's children. The slice is the
// tree's own, not a copy; callers that mutate the tree copy it first.
func (t *tree) iter(parent NodeID) []NodeID {
	return t.nodes[parent].children
}

// len returns the number of children of parent.
func (t *tree) len(parent NodeID) int {
	return len(t.nodes[parent].children)
}

// parentOf returns n's parent id, or invalidNodeID if n is the root.
func (t *tree) parentOf(n NodeID) NodeID {
	return t.nodes[n].parent
}

// swapChildren swaps the children of parent at positions i and j
// in place. A no-op if i == j.
func (t *tree) swapChildren(parent NodeID, i, j int) {
	if i == j {
		return
	}
	children := t.nodes[parent].children
	children[i], children[j] = children[j], children[i]
}

// removeChild detaches and marks removed the whole subtree rooted at
// parent's i-th child.
func (t *tree) removeChild(parent NodeID, i int) {
	children := t.nodes[parent].children
	id := children[i]
	t.nodes[parent].children = append(children[:i], children[i+1:]...)
	t.markRemoved(id)
}

func (t *tree) markRemoved(id NodeID) {
	t.nodes[id].removed = true
	for _, c := range t.nodes[id].children {
		t.markRemoved(c)
	}
}

// getMutPair returns the two distinct instances named by a and b.
// Panics (the I-borrowing "aliasing borrow" fatal error, §7) if
// a == b, since the caller asked for two disjoint mutable references
// to the same node.
func (t *tree) getMutPair(a, b NodeID) (*Instance, *Instance) {
	if a == b {
		panic(&vdomerrors.AliasingBorrowError{NodeID: int(a)})
	}
	return t.nodes[a].instance, t.nodes[b].instance
}
