package bandura

import "math"

// Builder assembles a control tree layer by layer. Each control
// method scopes a layer under the current parent and hands a child
// layer to the provided closure for nested construction.
type Builder struct {
	inner *Tree
}

// NewBuilder returns a builder over a fresh tree.
func NewBuilder() *Builder {
	return &Builder{inner: New()}
}

// IntoBuilder turns an existing tree back into a builder.
func (t *Tree) IntoBuilder() *Builder {
	return &Builder{inner: t}
}

// Layer opens the top layer of the tree, directly under the root.
func (b *Builder) Layer(fn func(*Layer)) {
	fn(&Layer{builder: b, id: RootID})
}

// Build validates the assembled tree and, on success, yields it.
// Build fails on a cycle, a dangling control node, or a decorator
// without exactly one child.
func (b *Builder) Build() (*Tree, error) {
	if err := b.inner.Validate(); err != nil {
		return nil, err
	}

	return b.inner, nil
}

// Layer scopes construction under one parent node.
type Layer struct {
	builder *Builder
	id      NodeID
	depth   int
}

// Sequence adds a Sequence node and builds its subtree.
func (l *Layer) Sequence(fn func(*Layer)) {
	l.Control(NewSequence(), fn)
}

// Fallback adds a Fallback node and builds its subtree.
func (l *Layer) Fallback(fn func(*Layer)) {
	l.Control(NewFallback(), fn)
}

// Parallel adds a Parallel node and builds its subtree.
func (l *Layer) Parallel(fn func(*Layer)) {
	l.Control(NewParallel(), fn)
}

// Decorate adds a node wrapping the provided decorator and builds
// its subtree.
func (l *Layer) Decorate(d Decorator, fn func(*Layer)) {
	l.Control(NewDecorator(d), fn)
}

// Repeat adds a Repeater node allowing retries further attempts after
// the first failure, and builds its subtree.
func (l *Layer) Repeat(retries int, fn func(*Layer)) {
	l.Control(NewRepeater(retries), fn)
}

// Invert adds an Inverter node and builds its subtree.
func (l *Layer) Invert(fn func(*Layer)) {
	l.Control(NewInverter(), fn)
}

// Subtree adds an anonymous Subtree marker and builds its subtree.
func (l *Layer) Subtree(fn func(*Layer)) {
	l.Control(NewSubtree(), fn)
}

// SubtreeNamed adds a named Subtree marker and builds its subtree.
func (l *Layer) SubtreeNamed(name string, fn func(*Layer)) {
	l.Control(NewNamedSubtree(name), fn)
}

// Control adds an arbitrary control node and hands the layer beneath
// it to fn.
func (l *Layer) Control(node *ControlNode, fn func(*Layer)) {
	next := l.nextLayer(node)
	fn(next)
}

// Leaf adds a leaf node to the current layer and returns its ID.
//
// If you are building through a BTLayer you probably want Execute or
// Condition instead, otherwise no dispatch entry is created and the
// behavior will not actually run.
func (l *Layer) Leaf(node *LeafNode) NodeID {
	return l.builder.inner.addChildUnchecked(l.id, node, math.MaxInt)
}

func (l *Layer) nextLayer(node *ControlNode) *Layer {
	id := l.builder.inner.addChildUnchecked(l.id, node, math.MaxInt)

	return &Layer{builder: l.builder, id: id, depth: l.depth + 1}
}

// BTBuilder assembles a behavior tree together with its leaf
// dispatch: every Execute and Condition call records the action for
// the leaf it creates.
type BTBuilder[B any] struct {
	inner    *Builder
	dispatch *Dispatch[B]
}

// NewBTBuilder returns a builder over a fresh behavior tree.
func NewBTBuilder[B any]() *BTBuilder[B] {
	return &BTBuilder[B]{inner: NewBuilder(), dispatch: NewDispatch[B]()}
}

// Layer opens the top layer of the tree, directly under the root.
func (b *BTBuilder[B]) Layer(fn func(*BTLayer[B])) {
	fn(&BTLayer[B]{control: &Layer{builder: b.inner, id: RootID}, dispatch: b.dispatch})
}

// Build validates the assembled tree and, on success, yields the
// runnable behavior tree.
func (b *BTBuilder[B]) Build() (*BT[B], error) {
	tree, err := b.inner.Build()
	if err != nil {
		return nil, err
	}

	return &BT[B]{tree: tree, dispatch: b.dispatch}, nil
}

// BTLayer scopes construction under one parent node, dispatch
// included.
type BTLayer[B any] struct {
	control  *Layer
	dispatch *Dispatch[B]
}

// Execute adds an executor leaf to the tree and the dispatch.
func (l *BTLayer[B]) Execute(executor Executor[B]) NodeID {
	id := l.control.Leaf(LeafForExecutor(executor))
	l.dispatch.AddExecutor(id, executor)

	return id
}

// Condition adds a conditional leaf to the tree and the dispatch.
func (l *BTLayer[B]) Condition(conditional Conditional[B]) NodeID {
	id := l.control.Leaf(LeafForConditional(conditional))
	l.dispatch.AddConditional(id, conditional)

	return id
}

// Sequence adds a Sequence node and builds its subtree.
func (l *BTLayer[B]) Sequence(fn func(*BTLayer[B])) {
	l.Control(NewSequence(), fn)
}

// Fallback adds a Fallback node and builds its subtree.
func (l *BTLayer[B]) Fallback(fn func(*BTLayer[B])) {
	l.Control(NewFallback(), fn)
}

// Parallel adds a Parallel node and builds its subtree.
func (l *BTLayer[B]) Parallel(fn func(*BTLayer[B])) {
	l.Control(NewParallel(), fn)
}

// Decorate adds a node wrapping the provided decorator and builds
// its subtree.
func (l *BTLayer[B]) Decorate(d Decorator, fn func(*BTLayer[B])) {
	l.Control(NewDecorator(d), fn)
}

// Repeat adds a Repeater node and builds its subtree.
func (l *BTLayer[B]) Repeat(retries int, fn func(*BTLayer[B])) {
	l.Control(NewRepeater(retries), fn)
}

// Invert adds an Inverter node and builds its subtree.
func (l *BTLayer[B]) Invert(fn func(*BTLayer[B])) {
	l.Control(NewInverter(), fn)
}

// Subtree adds an anonymous Subtree marker and builds its subtree.
func (l *BTLayer[B]) Subtree(fn func(*BTLayer[B])) {
	l.Control(NewSubtree(), fn)
}

// SubtreeNamed adds a named Subtree marker and builds its subtree.
func (l *BTLayer[B]) SubtreeNamed(name string, fn func(*BTLayer[B])) {
	l.Control(NewNamedSubtree(name), fn)
}

// Control adds an arbitrary control node and hands the layer beneath
// it to fn.
func (l *BTLayer[B]) Control(node *ControlNode, fn func(*BTLayer[B])) {
	next := l.control.nextLayer(node)
	fn(&BTLayer[B]{control: next, dispatch: l.dispatch})
}
