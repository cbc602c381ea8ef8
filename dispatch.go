package bandura

import "github.com/sirupsen/logrus"

// Executor is a leaf behavior that performs a task and updates the
// blackboard with the outcome.
type Executor[B any] interface {
	Execute(blackboard *B) Result

	// Name returns an optional display name for the leaf.
	Name() string

	// Details returns optional display details for the leaf.
	Details() string
}

// Conditional is a leaf behavior that reads the blackboard and
// returns a Result about it.
type Conditional[B any] interface {
	Evaluate(blackboard *B) Result

	// Name returns an optional display name for the leaf.
	Name() string

	// Details returns optional display details for the leaf.
	Details() string
}

type target struct {
	kind  LeafKind
	index int
}

// Dispatch routes ticked leaf nodes to externally owned Executor and
// Conditional instances. Actions live in two parallel arenas; the
// mask records which leaf dispatches to which arena slot.
type Dispatch[B any] struct {
	conditionals []Conditional[B]
	executors    []Executor[B]
	mask         map[NodeID]target
}

// NewDispatch returns an empty dispatch table.
func NewDispatch[B any]() *Dispatch[B] {
	return &Dispatch[B]{mask: make(map[NodeID]target)}
}

// AddExecutor assigns an Executor to a particular leaf NodeID.
func (d *Dispatch[B]) AddExecutor(id NodeID, executor Executor[B]) {
	d.mask[id] = target{kind: ExecutorLeaf, index: len(d.executors)}
	d.executors = append(d.executors, executor)
}

// AddConditional assigns a Conditional to a particular leaf NodeID.
func (d *Dispatch[B]) AddConditional(id NodeID, conditional Conditional[B]) {
	d.mask[id] = target{kind: ConditionalLeaf, index: len(d.conditionals)}
	d.conditionals = append(d.conditionals, conditional)
}

// taskHook is the short-lived binding of a Dispatch and a blackboard
// that plugs into the engine for the duration of one run. A leaf with
// no ID, or one this dispatch doesn't know, is logged and demoted to
// Failure rather than aborting the tick.
type taskHook[B any] struct {
	dispatch   *Dispatch[B]
	blackboard *B
	log        logrus.FieldLogger
}

func (h *taskHook[B]) Hook(leaf *LeafNode) Result {
	id := leaf.ID()
	if id == none {
		h.log.Error("leaf node must have an ID")
		return Failure
	}

	t, ok := h.dispatch.mask[id]
	if !ok {
		h.log.WithField("node_id", id).Error("leaf is not handled by this dispatch")
		return Failure
	}

	switch t.kind {
	case ExecutorLeaf:
		return h.dispatch.executors[t.index].Execute(h.blackboard)
	case ConditionalLeaf:
		return h.dispatch.conditionals[t.index].Evaluate(h.blackboard)
	default:
		h.log.WithField("node_id", id).Error("leaf has no registered action kind")
		return Failure
	}
}
