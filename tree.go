package bandura

import "slices"

// Tree owns an append-only arena of nodes addressed by NodeID and the
// adjacency map describing the tree shape. Child order within a
// parent is the traversal order.
type Tree struct {
	nodes    []Node
	children map[NodeID][]NodeID
}

// New returns a tree holding only its root node.
func New() *Tree {
	return &Tree{
		nodes:    []Node{newRoot()},
		children: map[NodeID][]NodeID{RootID: nil},
	}
}

// Node returns the node at id, nil if no such node exists.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}

	return t.nodes[id]
}

// Len returns the number of arena slots, detached nodes included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns a snapshot of id's ordered child list.
func (t *Tree) Children(id NodeID) []NodeID {
	return slices.Clone(t.children[id])
}

// Status returns the status of the whole tree, reflected by the
// status of its root node.
func (t *Tree) Status() Result {
	return t.nodes[RootID].Status().orRunning()
}

// ControlNodes returns every control node in the arena, the root
// excluded, detached nodes included.
func (t *Tree) ControlNodes() []*ControlNode {
	var controls []*ControlNode
	for _, node := range t.nodes {
		if c, ok := node.(*ControlNode); ok {
			controls = append(controls, c)
		}
	}

	return controls
}

// Decorators returns every decorator control node in the arena.
func (t *Tree) Decorators() []*ControlNode {
	var decorators []*ControlNode
	for _, c := range t.ControlNodes() {
		if c.IsDecorator() {
			decorators = append(decorators, c)
		}
	}

	return decorators
}

// Edges calls fn for every (parent, ordered children) entry in the
// adjacency map. Iteration order over parents is unspecified.
func (t *Tree) Edges(fn func(parent NodeID, children []NodeID)) {
	for parent, children := range t.children {
		fn(parent, slices.Clone(children))
	}
}

// addFloating appends a node to the arena without attaching it to any
// parent. The node is assigned the next free ID.
func (t *Tree) addFloating(node Node) NodeID {
	id := NodeID(len(t.nodes))
	node.setID(id)
	t.nodes = append(t.nodes, node)

	return id
}
