package retire

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/obsidian-security/vaultscan/pkg/report"
	"github.com/obsidian-security/vaultscan/pkg/types"
	"github.com/obsidian-security/vaultscan/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultCommand runs retire.js through npx so a global install is not required.
	DefaultCommand = "npx retire"

	// DefaultTimeout bounds a single retire.js invocation.
	DefaultTimeout = 5 * time.Minute
)

// InstallHints lists the ways to install retire.js, one per package manager.
var InstallHints = []string{
	"npm: npm install -g retire",
	"pnpm: pnpm install -g retire",
	"yarn: yarn global add retire",
}

// Scanner runs the retire.js CLI.
type Scanner struct {
	command []string
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewScanner creates a retire.js scanner. command is the executable prefix,
// e.g. "npx retire" or "/usr/local/bin/retire". A zero timeout disables the
// per-invocation deadline.
func NewScanner(command string, timeout time.Duration, log logrus.FieldLogger) *Scanner {
	argv := utils.SplitCommand(command)
	if len(argv) == 0 {
		argv = utils.SplitCommand(DefaultCommand)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Scanner{
		command: argv,
		timeout: timeout,
		log:     log,
	}
}

// Command returns the command prefix used to invoke retire.js.
func (s *Scanner) Command() string {
	return strings.Join(s.command, " ")
}

// Available reports whether `retire --version` runs successfully.
func (s *Scanner) Available(ctx context.Context) bool {
	res, err := utils.RunCommand(ctx, s.timeout, s.argv("--version")...)
	if err != nil {
		s.log.Debugf("retire.js probe failed: %v", err)
		return false
	}
	s.log.Debugf("Found retire.js %s", strings.TrimSpace(string(res.Stdout)))
	return true
}

// Scan runs retire.js against one plugin directory and returns every
// component it reported. Empty output and output without a "data" array
// yield no results and no error. Output that is not JSON yields
// ErrMalformedOutput.
func (s *Scanner) Scan(ctx context.Context, pluginPath string) ([]types.RetireFileResult, error) {
	res, err := utils.RunCommand(ctx, s.timeout, s.argv("--path", pluginPath, "--outputformat", "json")...)
	if res == nil {
		return nil, err
	}
	if res.TimedOut {
		return nil, fmt.Errorf("%w: %s", ErrScanTimedOut, pluginPath)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		// retire.js exits non-zero when it finds something, stdout still holds the report.
		s.log.Debugf("retire.js exited with %d for %s: %s", res.ExitCode, pluginPath, strings.TrimSpace(string(res.Stderr)))
	}

	parsed := report.ParseRetireOutput(res.Stdout)
	switch parsed.Status {
	case report.StatusOK:
		return parsed.Results, nil
	case report.StatusMalformed:
		return nil, fmt.Errorf("%w for %s: %v", ErrMalformedOutput, pluginPath, parsed.Err)
	case report.StatusSchemaMismatch:
		s.log.Debugf("retire.js output for %s has no data array", pluginPath)
	}

	return []types.RetireFileResult{}, nil
}

func (s *Scanner) argv(args ...string) []string {
	argv := make([]string, 0, len(s.command)+len(args))
	argv = append(argv, s.command...)
	return append(argv, args...)
}
