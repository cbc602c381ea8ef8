package bandura_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bandura "github.com/stntngo/bandura"
)

func Test_Result_Not(t *testing.T) {
	assert.Equal(t, bandura.Failure, bandura.Success.Not())
	assert.Equal(t, bandura.Success, bandura.Failure.Not())
	assert.Equal(t, bandura.Running, bandura.Running.Not())
}

func Test_Result_FailureIfRunning(t *testing.T) {
	assert.Equal(t, bandura.Failure, bandura.Running.FailureIfRunning())
	assert.Equal(t, bandura.Failure, bandura.Failure.FailureIfRunning())
	assert.Equal(t, bandura.Success, bandura.Success.FailureIfRunning())
}

func Test_Result_Terminal(t *testing.T) {
	assert.True(t, bandura.Success.Terminal())
	assert.True(t, bandura.Failure.Terminal())
	assert.False(t, bandura.Running.Terminal())
	assert.False(t, bandura.Invalid.Terminal())
}

func Test_Result_FromBool(t *testing.T) {
	require.Equal(t, bandura.Success, bandura.ResultFromBool(true))
	require.Equal(t, bandura.Failure, bandura.ResultFromBool(false))
}

func Test_Result_String(t *testing.T) {
	assert.Equal(t, "Running", bandura.Running.String())
	assert.Equal(t, "Success", bandura.Success.String())
	assert.Equal(t, "Failure", bandura.Failure.String())
	assert.Equal(t, "Invalid", bandura.Invalid.String())
}
