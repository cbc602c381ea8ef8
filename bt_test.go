package bandura_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bandura "github.com/stntngo/bandura"
)

func Test_BT_Unregistered_Leaf_Fails(t *testing.T) {
	builder := bandura.NewBTBuilder[counter]()

	builder.Layer(func(root *bandura.BTLayer[counter]) {
		root.Sequence(func(seq *bandura.BTLayer[counter]) {
			seq.Condition(bandura.PassConditional[counter]{})
		})
	})

	bt, err := builder.Build()
	require.NoError(t, err)

	// Sneak a leaf past the dispatch through the structural API.
	_, err = bt.Tree().AddChild(bandura.RootID, bandura.NewLeaf())
	require.NoError(t, err)

	logger, hook := logrustest.NewNullLogger()

	var board counter
	status := bt.Run(&board, bandura.WithLogger(logger))

	require.Equal(t, bandura.Failure, status,
		"an unregistered leaf folds to Failure instead of aborting the tick")

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func Test_BT_Structural_Edit_Between_Runs(t *testing.T) {
	builder := bandura.NewBTBuilder[counter]()

	increment := bandura.ExecutorFunc[counter](func(b *counter) bandura.Result {
		b.Count++
		return bandura.Success
	})

	builder.Layer(func(root *bandura.BTLayer[counter]) {
		root.Sequence(func(layer *bandura.BTLayer[counter]) {
			layer.Execute(increment)
		})
	})

	bt, err := builder.Build()
	require.NoError(t, err)

	var board counter
	require.Equal(t, bandura.Success, bt.Run(&board))
	require.Equal(t, 1, board.Count)

	// Register a second executor for a leaf added through the
	// structural API, then re-run from a clean slate.
	parent := bandura.RootID
	for _, child := range bt.Tree().Children(bandura.RootID) {
		if _, ok := bt.Tree().Node(child).(*bandura.ControlNode); ok {
			parent = child
		}
	}
	require.NotEqual(t, bandura.RootID, parent)

	leaf := bandura.LeafForExecutor[counter](increment)
	id, err := bt.Tree().AddChild(parent, leaf)
	require.NoError(t, err)
	bt.Dispatch().AddExecutor(id, increment)

	bt.Tree().ResetBranch(bandura.RootID)

	require.Equal(t, bandura.Success, bt.Run(&board))
	assert.Equal(t, 3, board.Count)
}

func Test_BT_IntoBuilder_Roundtrip(t *testing.T) {
	builder := bandura.NewBTBuilder[counter]()

	increment := bandura.ExecutorFunc[counter](func(b *counter) bandura.Result {
		b.Count++
		return bandura.Success
	})

	builder.Layer(func(root *bandura.BTLayer[counter]) {
		root.Sequence(func(seq *bandura.BTLayer[counter]) {
			seq.Execute(increment)
		})
	})

	bt, err := builder.Build()
	require.NoError(t, err)

	extended := bt.IntoBuilder()
	extended.Layer(func(root *bandura.BTLayer[counter]) {
		root.Sequence(func(seq *bandura.BTLayer[counter]) {
			seq.Execute(increment)
		})
	})

	bt, err = extended.Build()
	require.NoError(t, err)

	var board counter
	require.Equal(t, bandura.Success, bt.Run(&board))
	assert.Equal(t, 2, board.Count)
}

func Test_Conditional_Observes_Executor_Writes(t *testing.T) {
	// Conditionals observe the blackboard through the same pointer
	// executors mutate; the split is a capability convention, so the
	// dispatch must route reads and writes to the right arena.
	builder := bandura.NewBTBuilder[counter]()

	builder.Layer(func(root *bandura.BTLayer[counter]) {
		root.Sequence(func(seq *bandura.BTLayer[counter]) {
			seq.Condition(bandura.PredicateFunc[counter](func(b *counter) bool {
				return b.Count == 0
			}))
			seq.Execute(bandura.ExecutorFunc[counter](func(b *counter) bandura.Result {
				b.Count = 10
				return bandura.Success
			}))
			seq.Condition(bandura.PredicateFunc[counter](func(b *counter) bool {
				return b.Count == 10
			}))
		})
	})

	bt, err := builder.Build()
	require.NoError(t, err)

	var board counter
	require.Equal(t, bandura.Success, bt.Run(&board))
	assert.Equal(t, 10, board.Count)
}
