package bandura

// variant is the policy state machine behind a ControlNode.
type variant interface {
	Control
	Reset()
	cloneVariant() variant
}

// ControlNode is an internal node that routes ticks to its children
// under one of the control policies: Sequence, Fallback, Parallel, or
// a Decorator.
type ControlNode struct {
	variant       variant
	status        Result
	id            NodeID
	resetRequests []NodeID
}

// NewSequence returns a control node that succeeds iff every child
// succeeds, failing the moment any child fails.
func NewSequence() *ControlNode {
	return &ControlNode{variant: newSequence(), id: none}
}

// NewFallback returns a control node that succeeds the moment any
// child succeeds, failing iff none do.
func NewFallback() *ControlNode {
	return &ControlNode{variant: newFallback(), id: none}
}

// NewParallel returns a control node that runs every child each pass
// regardless of individual outcomes.
func NewParallel() *ControlNode {
	return &ControlNode{variant: newParallel(), id: none}
}

// NewDecorator returns a control node wrapping a custom Decorator.
func NewDecorator(d Decorator) *ControlNode {
	d.Init()
	return &ControlNode{variant: &decorated{d: d}, id: none}
}

// NewInverter returns a decorator node that negates its child's
// status.
func NewInverter() *ControlNode {
	return NewDecorator(&Inverter{})
}

// NewRepeater returns a decorator node that re-runs its child up to
// retries times after the first failure.
func NewRepeater(retries int) *ControlNode {
	return NewDecorator(newRepeater(retries))
}

// NewSubtree returns a pass-through decorator node marking the branch
// below it as a logical subtree.
func NewSubtree() *ControlNode {
	return NewDecorator(&Subtree{})
}

// NewNamedSubtree returns a Subtree marker with a display name.
func NewNamedSubtree(name string) *ControlNode {
	return NewDecorator(&Subtree{name: name})
}

// ID returns the node's arena address, negative until attached.
func (c *ControlNode) ID() NodeID {
	return c.id
}

// Status returns the Result cached from the node's last tick.
func (c *ControlNode) Status() Result {
	return c.status
}

// Decorator returns the node's decorator payload, if it has one.
func (c *ControlNode) Decorator() (Decorator, bool) {
	if d, ok := c.variant.(*decorated); ok {
		return d.d, true
	}

	return nil, false
}

// IsDecorator reports whether the node wraps a Decorator.
func (c *ControlNode) IsDecorator() bool {
	_, ok := c.Decorator()
	return ok
}

// Tick refreshes the node's cached status from its variant.
func (c *ControlNode) Tick() Result {
	// First time this node has been ticked.
	if c.status == Invalid {
		c.status = Running
	}

	c.status = c.variant.Tick()

	return c.status
}

// ChildUpdated forwards the update to the variant and immediately
// re-ticks to refresh the cached status.
func (c *ControlNode) ChildUpdated(update ChildUpdate) {
	c.variant.ChildUpdated(update)
	c.Tick()
}

// AllChildrenSeen notifies the variant that a full pass over the
// children is complete. For decorators this is the point where a
// pending reset request surfaces: decorators only have one child, so
// once they get a ChildUpdated they have implicitly seen them all.
func (c *ControlNode) AllChildrenSeen() {
	if d, ok := c.variant.(*decorated); ok {
		if id, ok := d.d.ResetRequest(); ok {
			c.resetRequests = append(c.resetRequests, id)
		}

		return
	}

	c.variant.AllChildrenSeen()
}

// Reset clears the cached status and the variant's per-pass state.
func (c *ControlNode) Reset() {
	c.status = Invalid
	c.variant.Reset()
}

func (c *ControlNode) setID(id NodeID)         { c.id = id }
func (c *ControlNode) setStatus(status Result) { c.status = status }

func (c *ControlNode) cloneControl() *ControlNode {
	return &ControlNode{
		variant: c.variant.cloneVariant(),
		status:  c.status,
		id:      c.id,
	}
}

func (c *ControlNode) clone() Node {
	return c.cloneControl()
}

func (c *ControlNode) takeResetRequests() []NodeID {
	requests := c.resetRequests
	c.resetRequests = nil
	return requests
}

// Sequence runs its children in order, failing immediately if any
// child fails and succeeding only once every child has succeeded.
// The zero value is a pristine Sequence.
type Sequence struct {
	pending   map[NodeID]struct{}
	failed    NodeID
	hasFailed bool
	status    Result
	finished  bool
}

func newSequence() *Sequence {
	return &Sequence{}
}

// Tick resolves the sequence's current status.
func (s *Sequence) Tick() Result {
	if s.hasFailed {
		s.status = Failure
		return Failure
	}

	if s.finished {
		s.status = Success
		return Success
	}

	if s.status == Invalid {
		s.status = Running
	}

	return s.status
}

// ChildUpdated tracks which children are still pending and which, if
// any, failed.
func (s *Sequence) ChildUpdated(update ChildUpdate) {
	switch update.Status {
	case Running:
		if s.pending == nil {
			s.pending = make(map[NodeID]struct{})
		}
		s.pending[update.Child] = struct{}{}
	case Success:
		delete(s.pending, update.Child)
	case Failure:
		s.failed = update.Child
		s.hasFailed = true
	}
}

// AllChildrenSeen finishes the sequence once no child is pending.
func (s *Sequence) AllChildrenSeen() {
	if len(s.pending) == 0 {
		s.finished = true
	}
}

// Reset restores the sequence to its pristine state.
func (s *Sequence) Reset() {
	clear(s.pending)
	s.failed = 0
	s.hasFailed = false
	s.status = Invalid
	s.finished = false
}

func (s *Sequence) cloneVariant() variant {
	c := &Sequence{
		failed:    s.failed,
		hasFailed: s.hasFailed,
		status:    s.status,
		finished:  s.finished,
	}
	if len(s.pending) > 0 {
		c.pending = make(map[NodeID]struct{}, len(s.pending))
		for id := range s.pending {
			c.pending[id] = struct{}{}
		}
	}

	return c
}

// Fallback runs its children in order until one succeeds. A lingering
// Running at the close of a pass is demoted to Failure.
type Fallback struct {
	status Result
}

func newFallback() *Fallback {
	return &Fallback{}
}

// Tick resolves the fallback's current status.
func (f *Fallback) Tick() Result {
	return f.status.orRunning()
}

// ChildUpdated locks in Success as soon as any child succeeds.
func (f *Fallback) ChildUpdated(update ChildUpdate) {
	if update.Status == Success {
		f.status = Success
	}
}

// AllChildrenSeen fails the fallback if no child ever succeeded.
func (f *Fallback) AllChildrenSeen() {
	if f.status == Invalid {
		f.status = Failure
		return
	}

	f.status = f.status.FailureIfRunning()
}

// Reset restores the fallback to its pristine state.
func (f *Fallback) Reset() {
	f.status = Invalid
}

func (f *Fallback) cloneVariant() variant {
	c := *f
	return &c
}

// Parallel runs all of its children each pass, regardless of their
// individual outcomes. Once every child has reached a terminal state
// it succeeds iff none failed. The zero value is a pristine Parallel.
type Parallel struct {
	success  map[NodeID]struct{}
	failure  map[NodeID]struct{}
	pending  map[NodeID]struct{}
	finished bool
}

func newParallel() *Parallel {
	return &Parallel{}
}

// Tick resolves the parallel's current status.
func (p *Parallel) Tick() Result {
	if !p.finished {
		return Running
	}

	if len(p.failure) == 0 {
		return Success
	}

	return Failure
}

// ChildUpdated buckets the child by its observed outcome.
func (p *Parallel) ChildUpdated(update ChildUpdate) {
	switch update.Status {
	case Success:
		delete(p.pending, update.Child)
		p.record(&p.success, update.Child)
	case Failure:
		delete(p.pending, update.Child)
		p.record(&p.failure, update.Child)
	case Running:
		p.record(&p.pending, update.Child)
	}
}

func (p *Parallel) record(bucket *map[NodeID]struct{}, id NodeID) {
	if *bucket == nil {
		*bucket = make(map[NodeID]struct{})
	}
	(*bucket)[id] = struct{}{}
}

// AllChildrenSeen finishes the parallel once no child is pending.
func (p *Parallel) AllChildrenSeen() {
	if len(p.pending) == 0 {
		p.finished = true
	}
}

// Reset restores the parallel to its pristine state.
func (p *Parallel) Reset() {
	clear(p.success)
	clear(p.failure)
	clear(p.pending)
	p.finished = false
}

func (p *Parallel) cloneVariant() variant {
	c := &Parallel{finished: p.finished}
	for id := range p.success {
		c.record(&c.success, id)
	}
	for id := range p.failure {
		c.record(&c.failure, id)
	}
	for id := range p.pending {
		c.record(&c.pending, id)
	}

	return c
}
