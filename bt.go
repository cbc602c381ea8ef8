package bandura

// BT pairs a control tree with the dispatch table that gives its
// leaves behavior. The tree owns the control skeleton; the dispatch
// owns the action instances; the blackboard is borrowed for the
// duration of each run.
type BT[B any] struct {
	tree     *Tree
	dispatch *Dispatch[B]
}

// NewBT returns an empty behavior tree.
func NewBT[B any]() *BT[B] {
	return &BT[B]{tree: New(), dispatch: NewDispatch[B]()}
}

// Tree exposes the underlying control tree for inspection and
// structural edits between runs.
func (bt *BT[B]) Tree() *Tree {
	return bt.tree
}

// Dispatch exposes the underlying dispatch table so actions can be
// registered for leaves added through structural edits.
func (bt *BT[B]) Dispatch() *Dispatch[B] {
	return bt.dispatch
}

// Run drives the tree to a terminal status, dispatching every ticked
// leaf to its registered action against the provided blackboard.
func (bt *BT[B]) Run(blackboard *B, opts ...RunOption) Result {
	config := defaultRunConfig()

	for _, opt := range opts {
		opt(config)
	}

	hook := &taskHook[B]{
		dispatch:   bt.dispatch,
		blackboard: blackboard,
		log:        config.logger,
	}

	return bt.tree.Run(hook, opts...)
}

// IntoBuilder turns the behavior tree back into a builder so it can
// be extended and re-validated.
func (bt *BT[B]) IntoBuilder() *BTBuilder[B] {
	return &BTBuilder[B]{inner: bt.tree.IntoBuilder(), dispatch: bt.dispatch}
}
