package exec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutor_Run(t *testing.T) {
	executor := NewCommandExecutor()
	ctx := context.Background()

	t.Run("should execute a simple command successfully", func(t *testing.T) {
		result, err := executor.Run(ctx, Command{Name: "echo", Args: []string{"hello world"}})
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", result.Stdout)
		assert.Empty(t, result.Stderr)
		assert.Equal(t, 0, result.ExitCode)
	})

	t.Run("should capture stderr", func(t *testing.T) {
		result, err := executor.Run(ctx, Command{Name: "sh", Args: []string{"-c", "echo 'hello stderr' 1>&2"}})
		require.NoError(t, err)
		assert.Empty(t, result.Stdout)
		assert.Equal(t, "hello stderr\n", result.Stderr)
		assert.Equal(t, 0, result.ExitCode)
	})

	t.Run("should handle non-zero exit codes", func(t *testing.T) {
		result, err := executor.Run(ctx, Command{Name: "sh", Args: []string{"-c", "exit 42"}})
		require.NoError(t, err) // We don't expect an error from Run itself
		assert.Equal(t, 42, result.ExitCode)
	})

	t.Run("should return error for non-existent command", func(t *testing.T) {
		_, err := executor.Run(ctx, Command{Name: "this_command_does_not_exist_12345"})
		assert.Error(t, err)
	})

	t.Run("should run in the given working directory", func(t *testing.T) {
		dir := t.TempDir()
		result, err := executor.Run(ctx, Command{Name: "pwd", Dir: dir})
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, dir)
	})

	t.Run("should append extra environment entries", func(t *testing.T) {
		result, err := executor.Run(ctx, Command{
			Name: "sh",
			Args: []string{"-c", "echo $COVGATE_TEST_VAR"},
			Env:  []string{"COVGATE_TEST_VAR=present"},
		})
		require.NoError(t, err)
		assert.Equal(t, "present\n", result.Stdout)
	})

	t.Run("should kill the command when the context expires", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := executor.Run(shortCtx, Command{Name: "sleep", Args: []string{"5"}})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
