package bandura

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// TreePrint renders the tree like you would see in the tree command,
// annotating every node that has a status with its last observed
// status; nodes not ticked since their last reset carry no annotation.
func TreePrint(t *Tree) string {
	tree := tp.New()

	p(t, RootID, tree)

	return tree.String()
}

func p(t *Tree, id NodeID, tree tp.Tree) {
	node := t.Node(id)

	var label string
	switch v := node.(type) {
	case *RootNode:
		label = "Root"
	case *ControlNode:
		label = controlLabel(v)
	case *LeafNode:
		label = v.Kind().String()
		if v.Name() != "" {
			label += fmt.Sprintf(": %s", v.Name())
		}
	default:
		label = "Unknown Node"
	}

	if status := node.Status(); status != Invalid {
		label += fmt.Sprintf(" [%s]", status)
	}

	children := t.Children(id)
	if len(children) == 0 {
		tree.AddNode(label)
		return
	}

	branch := tree.AddBranch(label)
	for _, child := range children {
		p(t, child, branch)
	}
}

func controlLabel(c *ControlNode) string {
	if d, ok := c.Decorator(); ok {
		return d.Name()
	}

	switch c.variant.(type) {
	case *Sequence:
		return "Sequence"
	case *Fallback:
		return "Fallback"
	case *Parallel:
		return "Parallel"
	default:
		return "Control"
	}
}
