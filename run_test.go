package bandura_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bandura "github.com/stntngo/bandura"
)

// slowLeaves returns Running the first time a leaf is seen and
// Success the second time, for exercising control node behavior when
// leaves are slow to return.
type slowLeaves struct {
	seen map[bandura.NodeID]bool
	log  bandura.LeafLogger
}

func newSlowLeaves() *slowLeaves {
	return &slowLeaves{seen: make(map[bandura.NodeID]bool)}
}

func (s *slowLeaves) Hook(leaf *bandura.LeafNode) bandura.Result {
	id := leaf.ID()

	status := bandura.Success
	if !s.seen[id] {
		s.seen[id] = true
		status = bandura.Running
	}

	s.log.Record(id, status)

	return status
}

// failGiven answers each leaf with whatever the provided function
// decides, recording every update.
type failGiven struct {
	fn  func(leaf *bandura.LeafNode) bandura.Result
	log bandura.LeafLogger
}

func (f *failGiven) Hook(leaf *bandura.LeafNode) bandura.Result {
	status := f.fn(leaf)
	f.log.Record(leaf.ID(), status)

	return status
}

func alwaysFail() *failGiven {
	return &failGiven{
		fn: func(*bandura.LeafNode) bandura.Result { return bandura.Failure },
	}
}

// failOddIDs fails every leaf with an odd NodeID.
func failOddIDs() *failGiven {
	return &failGiven{
		fn: func(leaf *bandura.LeafNode) bandura.Result {
			return bandura.ResultFromBool(leaf.ID()%2 == 0)
		},
	}
}

// testTree builds the standard two branch shape and returns the
// expected leaf visit order assuming every leaf succeeds:
//
//	      ( root )
//	     /        \
//	   (1)        (6)
//	 [ --> ]    [ --> ]
//	 / / \ \    /  |  \
//	2 3  4 5   7  (8)  11
//	           [ --> ]
//	             / \
//	            9   10
//
// [ --> ] marks the control node under test.
func testTree(t *testing.T, control func() *bandura.ControlNode) (*bandura.Tree, []bandura.NodeID) {
	t.Helper()

	return testThree(t, control(), control(), control())
}

func testThree(t *testing.T, left, right, inner *bandura.ControlNode) (*bandura.Tree, []bandura.NodeID) {
	t.Helper()

	tree := bandura.New()

	var order []bandura.NodeID

	leftID, err := tree.AddChild(bandura.RootID, left)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		id, err := tree.AddChild(leftID, bandura.NewLeaf())
		require.NoError(t, err)
		order = append(order, id)
	}

	rightID, err := tree.AddChild(bandura.RootID, right)
	require.NoError(t, err)

	first, err := tree.AddChild(rightID, bandura.NewLeaf())
	require.NoError(t, err)
	order = append(order, first)

	innerID, err := tree.AddChild(rightID, inner)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		id, err := tree.AddChild(innerID, bandura.NewLeaf())
		require.NoError(t, err)
		order = append(order, id)
	}

	last, err := tree.AddChild(rightID, bandura.NewLeaf())
	require.NoError(t, err)
	order = append(order, last)

	return tree, order
}

func update(status bandura.Result, id bandura.NodeID) bandura.ChildUpdate {
	return bandura.ChildUpdate{Status: status, Child: id}
}

func leftBranch(status bandura.Result) []bandura.ChildUpdate {
	return []bandura.ChildUpdate{
		update(status, 2),
		update(status, 3),
		update(status, 4),
		update(status, 5),
	}
}

func rightBranchInner(status bandura.Result) []bandura.ChildUpdate {
	return []bandura.ChildUpdate{
		update(status, 9),
		update(status, 10),
	}
}

// slowOrder is the full update log expected from running the test
// tree under slowLeaves: every leaf appears twice, with both left
// branch rounds finishing before any right branch visit.
func slowOrder() []bandura.ChildUpdate {
	var updates []bandura.ChildUpdate
	updates = append(updates, leftBranch(bandura.Running)...)
	updates = append(updates, leftBranch(bandura.Success)...)
	updates = append(updates, update(bandura.Running, 7))
	updates = append(updates, rightBranchInner(bandura.Running)...)
	updates = append(updates, rightBranchInner(bandura.Success)...)
	updates = append(updates, update(bandura.Running, 11))
	updates = append(updates, update(bandura.Success, 7))
	updates = append(updates, update(bandura.Success, 11))

	return updates
}

func Test_Empty_Tree(t *testing.T) {
	tree := bandura.New()

	var logger bandura.LeafLogger
	require.Equal(t, bandura.Success, tree.Run(&logger))
	assert.Empty(t, logger.Updates)
}

func Test_Happy_Sequence(t *testing.T) {
	tree, order := testTree(t, bandura.NewSequence)

	var logger bandura.LeafLogger
	status := tree.Run(&logger)

	require.Equal(t, bandura.Success, status)
	assert.Equal(t, order, logger.Order())
	assert.Equal(t, status, tree.Status())
}

func Test_Slow_Sequence(t *testing.T) {
	tree, _ := testTree(t, bandura.NewSequence)

	hook := newSlowLeaves()
	status := tree.Run(hook)

	require.Equal(t, bandura.Success, status)
	assert.Equal(t, slowOrder(), hook.log.Updates)
}

func Test_Fail_Sequence_Fast(t *testing.T) {
	tree, _ := testTree(t, bandura.NewSequence)

	hook := alwaysFail()
	status := tree.Run(hook)

	require.Equal(t, bandura.Failure, status)
	require.Len(t, hook.log.Updates, 1)
	assert.Equal(t, update(bandura.Failure, 2), hook.log.Updates[0])
}

func Test_Slow_Parallel(t *testing.T) {
	tree, _ := testTree(t, bandura.NewParallel)

	hook := newSlowLeaves()
	status := tree.Run(hook)

	require.Equal(t, bandura.Success, status)
	assert.Equal(t, slowOrder(), hook.log.Updates)
}

func Test_Parallel_Visits_All_Despite_Failures(t *testing.T) {
	tree, order := testTree(t, bandura.NewParallel)

	hook := failOddIDs()
	status := tree.Run(hook)

	// Every child runs regardless of individual outcomes, but any
	// failure fails the parallel and the root sequence with it.
	require.Equal(t, bandura.Failure, status)
	assert.Equal(t, order[:4], hook.log.Order())
}

func Test_Fallback(t *testing.T) {
	tree, _ := testTree(t, bandura.NewFallback)

	hook := failOddIDs()
	status := tree.Run(hook)

	require.Equal(t, bandura.Success, status, "fallback should succeed when it hits node 10")

	expected := []bandura.ChildUpdate{
		update(bandura.Success, 2),
		update(bandura.Failure, 7),
		update(bandura.Failure, 9),
		update(bandura.Success, 10),
	}
	assert.Equal(t, expected, hook.log.Updates, "leaves 3, 4, 5 and 11 must never run")
}

func Test_Fallback_All_Fail(t *testing.T) {
	tree, _ := testTree(t, bandura.NewFallback)

	hook := alwaysFail()
	status := tree.Run(hook)

	require.Equal(t, bandura.Failure, status)
	assert.Equal(t, leftBranch(bandura.Failure), hook.log.Updates)
}

func Test_Invert(t *testing.T) {
	tree, _ := testTree(t, bandura.NewSequence)

	// Wedge an inverter between every control node and its control
	// node parent.
	var controls []bandura.NodeID
	for _, c := range tree.ControlNodes() {
		controls = append(controls, c.ID())
	}

	type edge struct{ parent, child bandura.NodeID }
	var edges []edge
	tree.Edges(func(parent bandura.NodeID, children []bandura.NodeID) {
		for _, child := range children {
			for _, id := range controls {
				if child == id {
					edges = append(edges, edge{parent, child})
				}
			}
		}
	})

	for _, e := range edges {
		tree.InsertBetween(e.parent, []bandura.NodeID{e.child}, bandura.NewInverter())
	}

	hook := alwaysFail()
	status := tree.Run(hook)

	// Executors always fail, but every branch is inverted on the way
	// up.
	require.Equal(t, bandura.Success, status)
}

func Test_Repeat(t *testing.T) {
	const retries = 3

	tree, _ := testTree(t, bandura.NewParallel)

	seq := tree.InsertBetween(bandura.RootID, tree.Children(bandura.RootID), bandura.NewSequence())
	tree.InsertBetween(bandura.RootID, []bandura.NodeID{seq}, bandura.NewRepeater(retries))

	hook := alwaysFail()
	status := tree.Run(hook)

	var expected []bandura.ChildUpdate
	for i := 0; i < retries+1; i++ {
		expected = append(expected, leftBranch(bandura.Failure)...)
	}

	require.Equal(t, bandura.Failure, status)
	assert.Equal(t, expected, hook.log.Updates,
		"left branch leaves run once per attempt: the initial try plus %d retries", retries)
}

func Test_Nested_Repeat(t *testing.T) {
	const retries = 4

	tree, _ := testTree(t, bandura.NewParallel)

	seq := tree.InsertBetween(bandura.RootID, tree.Children(bandura.RootID), bandura.NewSequence())
	inner := tree.InsertBetween(bandura.RootID, []bandura.NodeID{seq}, bandura.NewRepeater(retries))
	tree.InsertBetween(bandura.RootID, []bandura.NodeID{inner}, bandura.NewRepeater(retries))

	hook := alwaysFail()
	status := tree.Run(hook)

	var expected []bandura.ChildUpdate
	for i := 0; i < (retries+1)*(retries+1); i++ {
		expected = append(expected, leftBranch(bandura.Failure)...)
	}

	require.Equal(t, bandura.Failure, status)
	require.Len(t, hook.log.Updates, len(expected))
	assert.Equal(t, expected, hook.log.Updates)
}

func Test_Run_Callback_Observes_Updates(t *testing.T) {
	tree, _ := testTree(t, bandura.NewSequence)

	var calls int
	cb := bandura.CallbackFunc(func(observed *bandura.Tree) {
		calls++
		require.Same(t, tree, observed)
	})

	var logger bandura.LeafLogger
	status := tree.Run(&logger, bandura.WithCallback(cb))

	require.Equal(t, bandura.Success, status)
	assert.Greater(t, calls, len(logger.Updates),
		"callback fires at node ticks and end of pass, not only at leaf hooks")
}

func Test_Run_Result_Matches_Cached_Root_Status(t *testing.T) {
	for _, hook := range []bandura.Hook{alwaysFail(), newSlowLeaves()} {
		tree, _ := testTree(t, bandura.NewSequence)
		status := tree.Run(hook)
		require.Equal(t, status, tree.Status())
	}
}
