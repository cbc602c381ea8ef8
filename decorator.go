package bandura

import "fmt"

// Decorator is the one open extension point in the control skeleton: a
// unary policy that transforms or modulates its single child's status.
// Hosts may implement their own; Inverter, Repeater and Subtree are
// provided.
type Decorator interface {
	// Init prepares the decorator before its first tick.
	Init()

	// ChildUpdated applies the decorator to a ChildUpdate. The
	// returned Result becomes the enclosing node's status, and
	// Status must agree with it until the next update.
	ChildUpdated(ChildUpdate) Result

	// Status returns the decorator's current status.
	Status() Result

	// Reset restores the decorator to its pristine state.
	Reset()

	// ResetRequest returns and consumes the ID of a subtree the
	// decorator wants cleared before the next pass, if any.
	ResetRequest() (NodeID, bool)

	// Name returns a display name for rendering.
	Name() string

	// Details returns display details for rendering.
	Details() string

	// Clone returns an independent copy of the decorator.
	Clone() Decorator
}

// decorated adapts a Decorator to the variant state machine shape.
type decorated struct {
	d Decorator
}

func (v *decorated) Tick() Result {
	return v.d.Status()
}

func (v *decorated) ChildUpdated(update ChildUpdate) {
	v.d.ChildUpdated(update)
}

func (v *decorated) AllChildrenSeen() {}

func (v *decorated) Reset() {
	v.d.Reset()
}

func (v *decorated) cloneVariant() variant {
	return &decorated{d: v.d.Clone()}
}

// Inverter negates its child's status. Running stays Running.
type Inverter struct {
	child Result
}

// Init ...
func (i *Inverter) Init() {}

// ChildUpdated remembers the child's status and returns its negation.
func (i *Inverter) ChildUpdated(update ChildUpdate) Result {
	i.child = update.Status
	return update.Status.Not()
}

// Status returns the negation of the child's last status.
func (i *Inverter) Status() Result {
	return i.child.orRunning().Not()
}

// Reset forgets the child's status.
func (i *Inverter) Reset() {
	i.child = Invalid
}

// ResetRequest never fires for an Inverter.
func (i *Inverter) ResetRequest() (NodeID, bool) {
	return none, false
}

// Name ...
func (i *Inverter) Name() string {
	return "Inverter"
}

// Details ...
func (i *Inverter) Details() string {
	return ""
}

// Clone returns an independent copy of the Inverter.
func (i *Inverter) Clone() Decorator {
	c := *i
	return &c
}

// Repeater re-runs its child until it succeeds or the retry budget is
// spent: the initial attempt plus the configured number of retries.
// On each child Failure with retries left it reports Running and
// requests a reset of the failed child so the next pass picks it up
// fresh.
type Repeater struct {
	initRetry int
	retry     int
	status    Result
	request   NodeID
}

func newRepeater(retries int) *Repeater {
	return &Repeater{
		initRetry: retries + 1,
		retry:     retries + 1,
		request:   none,
	}
}

// CanRetry reports whether any attempts remain.
func (r *Repeater) CanRetry() bool {
	return r.retry > 0
}

// Init marks the repeater Running.
func (r *Repeater) Init() {
	r.status = Running
}

// ChildUpdated folds the child's outcome into the retry budget.
func (r *Repeater) ChildUpdated(update ChildUpdate) Result {
	if !r.CanRetry() {
		// Out of retries. Whatever the update was, this is what
		// we're gonna get.
		r.status = Failure
		return Failure
	}

	switch update.Status {
	case Success:
		r.status = Success
		r.request = none
		return Success
	case Failure:
		r.retry--
		r.status = Running
		r.request = update.Child
		return Running
	default:
		r.status = Running
		r.request = update.Child
		return Running
	}
}

// Status returns the repeater's current status. The update that uses
// up the last attempt leaves it Running; the next update resolves it
// to Failure.
func (r *Repeater) Status() Result {
	if r.CanRetry() {
		return r.status.orRunning()
	}

	if r.status == Invalid {
		return Failure
	}

	return r.status
}

// ResetRequest surfaces the pending child reset while retries remain.
func (r *Repeater) ResetRequest() (NodeID, bool) {
	if !r.CanRetry() || r.request == none {
		return none, false
	}

	request := r.request
	r.request = none

	return request, true
}

// Reset restores the full retry budget.
func (r *Repeater) Reset() {
	r.request = none
	r.status = Invalid
	r.retry = r.initRetry
}

// Name ...
func (r *Repeater) Name() string {
	return fmt.Sprintf("Repeat(%d)", r.retry)
}

// Details ...
func (r *Repeater) Details() string {
	return fmt.Sprintf("%d of %d attempts left", r.retry, r.initRetry)
}

// Clone returns an independent copy of the Repeater.
func (r *Repeater) Clone() Decorator {
	c := *r
	return &c
}

// Subtree is an opaque pass-through marking the branch below it as a
// logical subtree. It carries a display name only.
type Subtree struct {
	status Result
	name   string
}

// Init ...
func (s *Subtree) Init() {}

// ChildUpdated caches and returns the child's status untouched.
func (s *Subtree) ChildUpdated(update ChildUpdate) Result {
	s.status = update.Status
	return update.Status
}

// Status returns the child's last status.
func (s *Subtree) Status() Result {
	return s.status.orRunning()
}

// Reset forgets the child's status.
func (s *Subtree) Reset() {
	s.status = Invalid
}

// ResetRequest never fires for a Subtree.
func (s *Subtree) ResetRequest() (NodeID, bool) {
	return none, false
}

// Name returns the subtree's display name.
func (s *Subtree) Name() string {
	if s.name == "" {
		return "Subtree"
	}

	return s.name
}

// Details ...
func (s *Subtree) Details() string {
	return ""
}

// Clone returns an independent copy of the Subtree marker.
func (s *Subtree) Clone() Decorator {
	c := *s
	return &c
}
