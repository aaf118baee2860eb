package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// For testing.
var (
	execCommand = exec.CommandContext
)

// CommandResult captures the outcome of an external command.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

const waitDelay = 2 * time.Second

// ErrEmptyCommand is returned when no executable was given.
var ErrEmptyCommand = errors.New("empty command")

// SplitCommand splits a command prefix such as "npx retire" into its fields.
func SplitCommand(command string) []string {
	return strings.Fields(command)
}

// RunCommand runs argv[0] with the remaining arguments and captures its
// output. A non-zero exit status is reported through ExitCode and the
// returned *exec.ExitError; callers that only care about stdout may ignore it.
// A timeout of zero disables the deadline.
func RunCommand(ctx context.Context, timeout time.Duration, argv ...string) (*CommandResult, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	//nolint:gosec // G204: the scanner command is chosen by the user
	cmd := execCommand(ctx, argv[0], argv[1:]...)
	// npx forks node; don't let an orphaned child hold the pipes open after a kill.
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("Running %s", strings.Join(argv, " "))
	start := time.Now()
	err := cmd.Run()

	result := &CommandResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.TimedOut = true
			result.ExitCode = -1
			return result, fmt.Errorf("%s timed out after %v", argv[0], timeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result, err
	}

	return result, nil
}
