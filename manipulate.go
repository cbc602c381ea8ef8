package bandura

import (
	"math"
	"slices"
)

// AddChild attaches child as the last child of parent, assigning it
// the next free ID (or re-using one it already carries). The edge is
// cycle-checked; on a cycle the node is taken out again with Remove,
// which drops every adjacency reference to it and its own child list,
// and the error is returned. Structural edits are forbidden during an
// in-progress tick.
func (t *Tree) AddChild(parent NodeID, child Node) (NodeID, error) {
	return t.AddChildWithPriority(parent, child, math.MaxInt)
}

// AddChildWithPriority attaches child at the given position in
// parent's child list (0 runs first; values past the end append).
func (t *Tree) AddChildWithPriority(parent NodeID, child Node, priority int) (NodeID, error) {
	id := t.addChildUnchecked(parent, child, priority)

	if err := t.recurseCycles(parent, nil); err != nil {
		t.Remove(id)
		return none, err
	}

	return id, nil
}

// addChildUnchecked attaches a node without re-validating the tree
// condition. Breaking it here is how you end up with infinite loops.
// AddChildWithPriority cycle-checks right after calling it and the
// builders validate at Build; InsertBetween does not re-check.
func (t *Tree) addChildUnchecked(parent NodeID, child Node, priority int) NodeID {
	id := child.ID()
	if id <= RootID {
		id = t.addFloating(child)
	} else {
		// Re-attaching a node that kept its ID: write it back into
		// its existing arena slot.
		t.nodes[id] = child
	}

	siblings := t.children[parent]
	index := min(priority, len(siblings))
	t.children[parent] = slices.Insert(siblings, index, id)

	if _, ok := t.children[id]; !ok {
		t.children[id] = nil
	}

	return id
}

// Remove drops id from every adjacency list and deletes its own
// entry. The arena slot is retained, so the node can be re-attached
// by ID later.
func (t *Tree) Remove(id NodeID) {
	for parent, children := range t.children {
		t.children[parent] = slices.DeleteFunc(children, func(c NodeID) bool {
			return c == id
		})
	}

	delete(t.children, id)
}

// InsertBetween places node between parent and the children listed in
// moveDown. The new node takes the position of the first moved-down
// child, and the moved-down children are reparented under it in the
// given order, so left-to-right order is maintained when moveDown is
// contiguous with the original children.
//
//	InsertBetween(0, []NodeID{2}, x)
//
//	        0                                  0
//	      / | \            ------>           / | \
//	     1  2  3                            1  x  3
//	                                           |
//	                                           2
//
//	InsertBetween(0, []NodeID{1, 3}, x)
//
//	        0                                  0
//	      / | \            ------>            / \
//	     1  2  3                             x   2
//	                                        / \
//	                                       1   3
//
// Panics if none of parent's children appear in moveDown.
func (t *Tree) InsertBetween(parent NodeID, moveDown []NodeID, node Node) NodeID {
	children := t.children[parent]

	index := slices.IndexFunc(children, func(c NodeID) bool {
		return slices.Contains(moveDown, c)
	})
	if index < 0 {
		panic("bandura: none of the children are in moveDown")
	}

	t.children[parent] = slices.DeleteFunc(children, func(c NodeID) bool {
		return slices.Contains(moveDown, c)
	})

	id := t.addChildUnchecked(parent, node, math.MaxInt)

	// addChildUnchecked appended the new node; move it to the slot
	// the first moved-down child held.
	siblings := t.children[parent]
	siblings = siblings[:len(siblings)-1]
	t.children[parent] = slices.Insert(siblings, index, id)

	t.children[id] = append(t.children[id], moveDown...)

	return id
}

// ExtractSubtree deep-clones the subtree rooted at start into a new
// tree. Old IDs are remapped to fresh IDs in the new arena; the
// extracted root becomes the sole child of the new tree's root.
func (t *Tree) ExtractSubtree(start NodeID) *Tree {
	subtree := New()

	clone := t.nodes[start].clone()
	clone.setID(none)
	mapped := subtree.addChildUnchecked(RootID, clone, math.MaxInt)

	remap := map[NodeID]NodeID{start: mapped}

	visit := []NodeID{start}
	for len(visit) > 0 {
		from := visit[len(visit)-1]
		visit = visit[:len(visit)-1]

		parent := remap[from]
		for _, child := range t.children[from] {
			node := t.nodes[child].clone()
			id := subtree.addFloating(node)

			subtree.children[parent] = append(subtree.children[parent], id)
			subtree.children[id] = nil

			remap[child] = id
			visit = append(visit, child)
		}
	}

	return subtree
}

// AddSubtreeAsFirstChild splices sub below from ahead of its existing
// children.
func (t *Tree) AddSubtreeAsFirstChild(from NodeID, sub *Tree) {
	t.AddSubtreeWithPriority(from, 0, sub)
}

// AddSubtreeAsLastChild splices sub below from after its existing
// children.
func (t *Tree) AddSubtreeAsLastChild(from NodeID, sub *Tree) {
	t.AddSubtreeWithPriority(from, math.MaxInt, sub)
}

// AddSubtreeWithPriority splices a clone of sub's nodes into this
// tree below from, wrapped in a Subtree marker placed at the given
// position in from's child list. Every donor ID is remapped to a
// fresh ID in this arena; sub itself is left untouched.
func (t *Tree) AddSubtreeWithPriority(from NodeID, priority int, sub *Tree) {
	wrapper := t.addFloating(NewSubtree())

	siblings := t.children[from]
	index := min(priority, len(siblings))
	t.children[from] = slices.Insert(siblings, index, wrapper)
	t.children[wrapper] = nil

	remap := make(map[NodeID]NodeID, sub.Len())
	for id, node := range sub.nodes {
		if _, ok := node.(*RootNode); ok {
			continue
		}

		clone := node.clone()
		remap[NodeID(id)] = t.addFloating(clone)
	}

	for parent, children := range sub.children {
		target := wrapper
		if parent != RootID {
			target = remap[parent]
		}

		for _, child := range children {
			t.children[target] = append(t.children[target], remap[child])
		}
	}

	for _, mapped := range remap {
		if _, ok := t.children[mapped]; !ok {
			t.children[mapped] = nil
		}
	}
}
