package bandura

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/sirupsen/logrus"
)

// Hook connects leaf nodes to whatever performs their behavior. The
// engine itself knows nothing about what executors or conditionals
// do; it hands the leaf over and stores the Result that comes back.
type Hook interface {
	Hook(leaf *LeafNode) Result
}

// HookFunc turns a plain function into a valid Hook.
type HookFunc func(leaf *LeafNode) Result

// Hook calls the underlying function.
func (f HookFunc) Hook(leaf *LeafNode) Result {
	return f(leaf)
}

// Callback observes the tree at each meaningful state change during a
// run: node ticks, leaf hook returns, child-update deliveries and
// end-of-pass transitions. Useful primarily for debuggers and
// renderers watching the control skeleton itself.
type Callback interface {
	OnUpdate(t *Tree)
}

// CallbackFunc turns a plain function into a valid Callback.
type CallbackFunc func(t *Tree)

// OnUpdate calls the underlying function.
func (f CallbackFunc) OnUpdate(t *Tree) {
	f(t)
}

type nopCallback struct{}

func (nopCallback) OnUpdate(*Tree) {}

var defaultTracer = opentracing.NoopTracer{}

// RunConfiguration ...
type RunConfiguration struct {
	tracer   opentracing.Tracer
	logger   logrus.FieldLogger
	callback Callback
}

func defaultRunConfig() *RunConfiguration {
	return &RunConfiguration{
		tracer:   &defaultTracer,
		logger:   logrus.StandardLogger(),
		callback: nopCallback{},
	}
}

// RunOption ...
type RunOption func(config *RunConfiguration)

// WithTracer traces each engine pass through the provided tracer.
func WithTracer(tracer opentracing.Tracer) RunOption {
	return func(config *RunConfiguration) {
		config.tracer = tracer
	}
}

// WithLogger routes the engine's runtime diagnostics to the provided
// logger.
func WithLogger(logger logrus.FieldLogger) RunOption {
	return func(config *RunConfiguration) {
		config.logger = logger
	}
}

// WithCallback registers an observer invoked at each meaningful state
// change during the run.
func WithCallback(cb Callback) RunOption {
	return func(config *RunConfiguration) {
		config.callback = cb
	}
}

// Run drives the tree until the root reaches a terminal status,
// invoking hook for every leaf that needs a decision. The returned
// Result equals the root's cached status.
//
// Run executes synchronously: a hook that keeps answering Running for
// a leaf under a Parallel or Repeater keeps the engine in its pass
// loop until something changes.
func (t *Tree) Run(hook Hook, opts ...RunOption) Result {
	config := defaultRunConfig()

	for _, opt := range opts {
		opt(config)
	}

	for t.Status() == Running {
		span := config.tracer.StartSpan("bandura::pass")

		t.runFrom(RootID, hook, config.callback)

		span.LogFields(
			log.String("node_type", "root"),
			log.String("node_result", t.Status().String()),
		)
		span.Finish()
	}

	return t.Status()
}

// RunFrom drives the subtree rooted at id, pass after pass, until the
// node at id reaches a terminal status, and returns that status. The
// node at id must be the root or a control node.
func (t *Tree) RunFrom(id NodeID, hook Hook, opts ...RunOption) Result {
	config := defaultRunConfig()

	for _, opt := range opts {
		opt(config)
	}

	return t.runFrom(id, hook, config.callback)
}

func (t *Tree) runFrom(id NodeID, hook Hook, cb Callback) Result {
	status := t.nodes[id].Tick()
	cb.OnUpdate(t)

	for status == Running {
		for _, child := range t.Children(id) {
			// Tick the parent node and stop the pass early if it has
			// already reached a terminal state.
			if t.nodes[id].Tick().Terminal() {
				cb.OnUpdate(t)
				break
			}

			// Don't re-run successful nodes within a pass. A
			// decorator-initiated reset clears this marking so the
			// next pass picks the child up again.
			if t.nodes[child].Status() == Success {
				continue
			}

			if leaf, ok := t.nodes[child].(*LeafNode); ok {
				// Hook the leaf to get its status and update the
				// parent with the result.
				status := hook.Hook(leaf)
				leaf.setStatus(status)
				cb.OnUpdate(t)

				t.nodes[id].ChildUpdated(ChildUpdate{
					Status: status,
					Child:  child,
				})
			} else {
				// Continue down the control tree, updating the parent
				// with the eventual result.
				status := t.nodes[child].Tick()
				subtree := status
				if status == Running {
					subtree = t.runFrom(child, hook, cb)
				}

				t.nodes[id].ChildUpdated(ChildUpdate{
					Status: subtree,
					Child:  child,
				})
			}
		}

		// Tell the node all the children have run.
		t.nodes[id].AllChildrenSeen()

		status = t.nodes[id].Tick()
		t.handleResetRequests(id)
		cb.OnUpdate(t)
	}

	return status
}

func (t *Tree) handleResetRequests(id NodeID) {
	control, ok := t.nodes[id].(*ControlNode)
	if !ok {
		return
	}

	for _, request := range control.takeResetRequests() {
		t.ResetBranch(request)
	}
}

// ResetBranch clears the cached status of every node in the subtree
// rooted at from, so the next pass re-ticks the branch from scratch.
func (t *Tree) ResetBranch(from NodeID) {
	visit := []NodeID{from}
	for len(visit) > 0 {
		id := visit[len(visit)-1]
		visit = visit[:len(visit)-1]

		t.nodes[id].Reset()
		visit = append(visit, t.children[id]...)
	}
}
