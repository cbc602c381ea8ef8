package bandura

// NodeID addresses a node inside a Tree's arena. IDs are stable for
// the life of the tree; removing a node only drops its adjacency
// references, never its arena slot.
type NodeID int

// RootID is the reserved address of every Tree's root node.
const RootID NodeID = 0

// none marks a node that has not been attached to a tree yet.
const none NodeID = -1

// ChildUpdate carries a child's freshly observed Result up to its
// parent control node.
type ChildUpdate struct {
	Status Result
	Child  NodeID
}

// Control defines the minimum capability necessary to drive a node
// through the tick process.
type Control interface {
	// Tick refreshes and returns the node's current Result.
	Tick() Result

	// ChildUpdated registers the Result returned by a child node.
	ChildUpdated(ChildUpdate)

	// AllChildrenSeen tells the node the engine has finished one full
	// pass over its children. Sequence and Parallel need this to know
	// when to leave Running, otherwise they would be stuck forever.
	AllChildrenSeen()
}

// Node is a slot in a Tree's arena: the root, an internal control
// node, or a leaf. The set of implementations is closed; behavior is
// extended through the Decorator capability instead.
type Node interface {
	Control

	// ID returns the node's arena address, or a negative sentinel if
	// the node has not been attached to a tree.
	ID() NodeID

	// Status returns the cached Result from the node's last tick.
	// Invalid means the node has not been ticked since its last reset.
	Status() Result

	// Reset clears the cached status and any per-pass state so the
	// next pass re-ticks the node from scratch.
	Reset()

	setID(NodeID)
	setStatus(Result)
	clone() Node
}

// RootNode is the distinguished top-level node of every tree. It
// behaves as a Sequence for tick purposes.
type RootNode struct {
	ControlNode
}

func newRoot() *RootNode {
	return &RootNode{ControlNode{variant: newSequence(), id: RootID}}
}

func (r *RootNode) clone() Node {
	return &RootNode{*r.ControlNode.cloneControl()}
}

// LeafKind distinguishes the two action capabilities a leaf can
// dispatch to.
type LeafKind int

const (
	// UnknownLeaf is a leaf with no registered action.
	UnknownLeaf LeafKind = iota
	// ConditionalLeaf reads the blackboard.
	ConditionalLeaf
	// ExecutorLeaf mutates the blackboard.
	ExecutorLeaf
)

// String returns the human readable name of the LeafKind.
func (k LeafKind) String() string {
	switch k {
	case ConditionalLeaf:
		return "Conditional"
	case ExecutorLeaf:
		return "Executor"
	default:
		return "Unknown"
	}
}

// LeafNode is a childless node whose behavior lives outside the tree,
// reached through a Hook at tick time.
type LeafNode struct {
	id      NodeID
	status  Result
	kind    LeafKind
	name    string
	details string
}

// NewLeaf returns an unattached leaf with no registered action kind.
func NewLeaf() *LeafNode {
	return &LeafNode{id: none}
}

// LeafForExecutor returns a leaf carrying the executor's metadata.
func LeafForExecutor[B any](e Executor[B]) *LeafNode {
	return &LeafNode{
		id:      none,
		kind:    ExecutorLeaf,
		name:    e.Name(),
		details: e.Details(),
	}
}

// LeafForConditional returns a leaf carrying the conditional's
// metadata.
func LeafForConditional[B any](c Conditional[B]) *LeafNode {
	return &LeafNode{
		id:      none,
		kind:    ConditionalLeaf,
		name:    c.Name(),
		details: c.Details(),
	}
}

// ID returns the leaf's arena address, negative until attached.
func (l *LeafNode) ID() NodeID {
	return l.id
}

// Status returns the Result cached from the leaf's last hook.
func (l *LeafNode) Status() Result {
	return l.status
}

// Kind reports which action capability the leaf dispatches to.
func (l *LeafNode) Kind() LeafKind {
	return l.kind
}

// Name returns the leaf's display name.
func (l *LeafNode) Name() string {
	return l.name
}

// Details returns the leaf's display details.
func (l *LeafNode) Details() string {
	return l.details
}

// Tick returns the leaf's cached status, Running if it has none.
func (l *LeafNode) Tick() Result {
	l.status = l.status.orRunning()
	return l.status
}

// ChildUpdated panics: leaves have no children. Reaching this means
// the structural invariants were subverted through an unchecked API.
func (l *LeafNode) ChildUpdated(ChildUpdate) {
	panic("bandura: leaf nodes cannot have children")
}

// AllChildrenSeen is a no-op for leaves.
func (l *LeafNode) AllChildrenSeen() {}

// Reset clears the leaf's cached status.
func (l *LeafNode) Reset() {
	l.status = Invalid
}

func (l *LeafNode) setID(id NodeID)         { l.id = id }
func (l *LeafNode) setStatus(status Result) { l.status = status }

func (l *LeafNode) clone() Node {
	c := *l
	return &c
}
