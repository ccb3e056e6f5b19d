package execwrap

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_CapturesStdout(t *testing.T) {
	runner := NewCommandRunner()

	res, err := runner.Run(context.Background(), "sh", "-c", "echo hello")

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestCommandRunner_NonZeroExitIsNotAnError(t *testing.T) {
	runner := NewCommandRunner()

	res, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 134")

	require.NoError(t, err)
	assert.Equal(t, 134, res.ExitCode)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestCommandRunner_MissingProgram(t *testing.T) {
	runner := NewCommandRunner()

	_, err := runner.Run(context.Background(), "definitely-not-a-real-program-xyz")

	require.Error(t, err)
}

func TestCommandRunner_RunWithInput(t *testing.T) {
	runner := NewCommandRunner()

	res, err := runner.RunWithInput(context.Background(),
		strings.NewReader("a.fit\nb.fit\n"), "sh", "-c", "cat")

	require.NoError(t, err)
	assert.Equal(t, "a.fit\nb.fit\n", res.Stdout)
}

func TestCommandRunner_CancelledContext(t *testing.T) {
	runner := NewCommandRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, "sh", "-c", "sleep 5")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_FirstStderrLine(t *testing.T) {
	res := &Result{Stderr: "\n  \nfirst real line\nsecond line\n"}
	assert.Equal(t, "first real line", res.FirstStderrLine())

	empty := &Result{}
	assert.Equal(t, "", empty.FirstStderrLine())
}
