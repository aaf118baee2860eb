package utils

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	assert.Equal(t, []string{"npx", "retire"}, SplitCommand("npx retire"))
	assert.Equal(t, []string{"retire"}, SplitCommand("  retire \t"))
	assert.Empty(t, SplitCommand(""))
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name         string
		argv         []string
		timeout      time.Duration
		wantErr      bool
		wantExitCode int
		wantStdout   string
		wantTimedOut bool
	}{
		{
			name:       "success",
			argv:       []string{"/bin/sh", "-c", "echo hello"},
			wantStdout: "hello\n",
		},
		{
			name:         "non-zero exit keeps stdout",
			argv:         []string{"/bin/sh", "-c", "echo '{\"data\":[]}'; exit 13"},
			wantErr:      true,
			wantExitCode: 13,
			wantStdout:   "{\"data\":[]}\n",
		},
		{
			name:         "executable not found",
			argv:         []string{"vaultscan-definitely-not-installed"},
			wantErr:      true,
			wantExitCode: -1,
		},
		{
			name:         "timeout",
			argv:         []string{"/bin/sh", "-c", "sleep 5"},
			timeout:      100 * time.Millisecond,
			wantErr:      true,
			wantExitCode: -1,
			wantTimedOut: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := RunCommand(context.Background(), tc.timeout, tc.argv...)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, res)
			assert.Equal(t, tc.wantExitCode, res.ExitCode)
			assert.Equal(t, tc.wantStdout, string(res.Stdout))
			assert.Equal(t, tc.wantTimedOut, res.TimedOut)
		})
	}
}

func TestRunCommandEmpty(t *testing.T) {
	res, err := RunCommand(context.Background(), 0)
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Nil(t, res)
}

func TestRunCommandArguments(t *testing.T) {
	var gotName string
	var gotArgs []string

	orig := execCommand
	defer func() { execCommand = orig }()
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		return exec.CommandContext(ctx, "/bin/sh", "-c", "true")
	}

	_, err := RunCommand(context.Background(), time.Second, "npx", "retire", "--path", "/vault/My Plugin", "--outputformat", "json")
	require.NoError(t, err)

	assert.Equal(t, "npx", gotName)
	// Paths with spaces stay a single argument
	assert.Equal(t, []string{"retire", "--path", "/vault/My Plugin", "--outputformat", "json"}, gotArgs)
}
