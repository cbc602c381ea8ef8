package bandura

import (
	"fmt"
	"slices"
)

// CycleError reports a directed cycle in the adjacency map. Path is
// the walk that revisited its starting node.
type CycleError struct {
	Path []NodeID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("bandura: cycle detected: %v", e.Path)
}

// DanglingControlError reports a control node with no children.
type DanglingControlError struct {
	Node NodeID
}

func (e *DanglingControlError) Error() string {
	return fmt.Sprintf("bandura: dangling control node: %d", e.Node)
}

// InvalidDecoratorError reports a decorator with anything other than
// exactly one child.
type InvalidDecoratorError struct {
	Decorator NodeID
	Children  []NodeID
}

func (e *InvalidDecoratorError) Error() string {
	return fmt.Sprintf(
		"bandura: decorator %d must have exactly one child, found %d: %v",
		e.Decorator, len(e.Children), e.Children,
	)
}

// Validate checks the structural invariants a runnable tree must
// hold: no cycles, no dangling control nodes, and exactly one child
// per decorator. Violations are returned, never thrown mid-build.
func (t *Tree) Validate() error {
	if err := t.checkCycles(); err != nil {
		return err
	}

	if err := t.validateDecorators(); err != nil {
		return err
	}

	return t.checkDanglingControls()
}

// checkCycles walks every edge in the adjacency map: for each edge
// (parent, child), no path from child may revisit parent.
func (t *Tree) checkCycles() error {
	for parent, children := range t.children {
		for _, child := range children {
			if err := t.recurseCycles(child, []NodeID{parent}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (t *Tree) recurseCycles(from NodeID, history []NodeID) error {
	if len(history) > 0 && history[0] == from {
		path := slices.Clone(history)
		path = append(path, history[0])
		return &CycleError{Path: path}
	}

	history = append(history, from)
	for _, child := range t.children[from] {
		if err := t.recurseCycles(child, history); err != nil {
			return err
		}
	}

	return nil
}

// validateDecorators enforces decorator arity over the whole arena.
func (t *Tree) validateDecorators() error {
	for _, d := range t.Decorators() {
		if children := t.Children(d.ID()); len(children) != 1 {
			return &InvalidDecoratorError{
				Decorator: d.ID(),
				Children:  children,
			}
		}
	}

	return nil
}

// checkDanglingControls rejects control nodes with no children:
// control nodes are by definition not leaves so must have at least
// one.
func (t *Tree) checkDanglingControls() error {
	for _, c := range t.ControlNodes() {
		if len(t.children[c.ID()]) == 0 {
			return &DanglingControlError{Node: c.ID()}
		}
	}

	return nil
}
