package bandura

// ExecutorFunc turns a childless function into a valid Executor.
type ExecutorFunc[B any] func(blackboard *B) Result

// Execute calls the underlying function.
func (f ExecutorFunc[B]) Execute(blackboard *B) Result {
	return f(blackboard)
}

// Name ...
func (ExecutorFunc[B]) Name() string { return "" }

// Details ...
func (ExecutorFunc[B]) Details() string { return "" }

// ConditionalFunc turns a read-only function into a valid
// Conditional.
type ConditionalFunc[B any] func(blackboard *B) Result

// Evaluate calls the underlying function.
func (f ConditionalFunc[B]) Evaluate(blackboard *B) Result {
	return f(blackboard)
}

// Name ...
func (ConditionalFunc[B]) Name() string { return "" }

// Details ...
func (ConditionalFunc[B]) Details() string { return "" }

// PredicateFunc turns a boolean function into a valid Conditional.
type PredicateFunc[B any] func(blackboard *B) bool

// Evaluate maps the predicate's answer onto Success or Failure.
func (f PredicateFunc[B]) Evaluate(blackboard *B) Result {
	return ResultFromBool(f(blackboard))
}

// Name ...
func (PredicateFunc[B]) Name() string { return "" }

// Details ...
func (PredicateFunc[B]) Details() string { return "" }

// PassExecutor always succeeds.
type PassExecutor[B any] struct{}

// Execute ...
func (PassExecutor[B]) Execute(*B) Result { return Success }

// Name ...
func (PassExecutor[B]) Name() string { return "PassExecutor" }

// Details ...
func (PassExecutor[B]) Details() string { return "Always passes" }

// FailExecutor always fails.
type FailExecutor[B any] struct{}

// Execute ...
func (FailExecutor[B]) Execute(*B) Result { return Failure }

// Name ...
func (FailExecutor[B]) Name() string { return "FailExecutor" }

// Details ...
func (FailExecutor[B]) Details() string { return "Always fails" }

// PassConditional always passes.
type PassConditional[B any] struct{}

// Evaluate ...
func (PassConditional[B]) Evaluate(*B) Result { return Success }

// Name ...
func (PassConditional[B]) Name() string { return "PassConditional" }

// Details ...
func (PassConditional[B]) Details() string { return "Always passes" }

// FailConditional always fails.
type FailConditional[B any] struct{}

// Evaluate ...
func (FailConditional[B]) Evaluate(*B) Result { return Failure }

// Name ...
func (FailConditional[B]) Name() string { return "FailConditional" }

// Details ...
func (FailConditional[B]) Details() string { return "Always fails" }

// LeafLogger records the IDs of and statuses returned by leaf nodes
// in the order they were executed. As a bare Hook it answers with the
// leaf's cached status, defaulting to Success, so it doubles as an
// everything-passes hook for exercising the control skeleton. It can
// also be composed into hooks that do more complex stuff via Record.
type LeafLogger struct {
	// Updates only contains leaf updates, never control or root
	// ticks.
	Updates []ChildUpdate
}

// Hook records and returns the leaf's cached status, Success if it
// has none.
func (l *LeafLogger) Hook(leaf *LeafNode) Result {
	status := leaf.Status()
	if status == Invalid {
		status = Success
	}

	l.Record(leaf.ID(), status)

	return status
}

// Record appends a leaf observation to the log.
func (l *LeafLogger) Record(id NodeID, status Result) {
	l.Updates = append(l.Updates, ChildUpdate{Status: status, Child: id})
}

// Order returns just the visited leaf IDs, in execution order.
func (l *LeafLogger) Order() []NodeID {
	order := make([]NodeID, len(l.Updates))
	for i, update := range l.Updates {
		order[i] = update.Child
	}

	return order
}
