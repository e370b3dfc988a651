package execkit

import (
	"context"
	"testing"
	"time"

	"golang-lean-bridge/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, timeout time.Duration) *CommandRunner {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewCommandRunner(timeout, log)
}

func TestRunCapturesOutputOnSuccess(t *testing.T) {
	runner := newTestRunner(t, 0)

	result := runner.Run(context.Background(), "echo", "hello")

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReturnCode)
	assert.Equal(t, "hello\n", result.Output)
}

func TestRunCapturesExitCodeAndStderr(t *testing.T) {
	runner := newTestRunner(t, 0)

	result := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ReturnCode)
	assert.Contains(t, result.Error, "oops")
}

func TestRunMissingBinary(t *testing.T) {
	runner := newTestRunner(t, 0)

	result := runner.Run(context.Background(), "definitely-not-a-real-binary-462")

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ReturnCode)
	assert.NotEmpty(t, result.Error)
}

func TestRunMetacharactersStayLiteral(t *testing.T) {
	runner := newTestRunner(t, 0)

	// An argv element with shell metacharacters must arrive as literal
	// argument content, never be interpreted.
	hostile := "My Project; rm -rf /"
	result := runner.Run(context.Background(), "printf", "%s", hostile)

	assert.True(t, result.Success)
	assert.Equal(t, hostile, result.Output)
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	runner := newTestRunner(t, 100*time.Millisecond)

	start := time.Now()
	result := runner.Run(context.Background(), "sleep", "5")

	assert.False(t, result.Success)
	assert.Less(t, time.Since(start), 2*time.Second)
}
