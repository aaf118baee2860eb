package retire

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/obsidian-security/vaultscan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lodashReport = `{"data":[{"results":[{"component":"lodash","version":"4.0.0","vulnerabilities":[{"severity":"high","info":["CVE-2020-1234"]}]}]}]}`

// fakeRetire writes a shell script standing in for the retire.js CLI.
func fakeRetire(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retire")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err)
	return path
}

func TestNewScanner(t *testing.T) {
	s := NewScanner("", 0, nil)
	assert.Equal(t, DefaultCommand, s.Command())

	s = NewScanner("  /opt/node/bin/retire  ", time.Minute, nil)
	assert.Equal(t, "/opt/node/bin/retire", s.Command())
	assert.Equal(t, []string{"/opt/node/bin/retire", "--version"}, s.argv("--version"))
}

func TestScannerAvailable(t *testing.T) {
	tests := []struct {
		name    string
		command func(t *testing.T) string
		want    bool
	}{
		{
			name: "installed",
			command: func(t *testing.T) string {
				return fakeRetire(t, `[ "$1" = "--version" ] && echo 5.2.4`)
			},
			want: true,
		},
		{
			name: "version probe fails",
			command: func(t *testing.T) string {
				return fakeRetire(t, "exit 1")
			},
			want: false,
		},
		{
			name: "not installed",
			command: func(_ *testing.T) string {
				return "vaultscan-missing-retire"
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScanner(tc.command(t), 10*time.Second, nil)
			assert.Equal(t, tc.want, s.Available(context.Background()))
		})
	}
}

func TestScannerAvailableTimeout(t *testing.T) {
	s := NewScanner(fakeRetire(t, "exec sleep 5"), 100*time.Millisecond, nil)
	assert.False(t, s.Available(context.Background()))
}

func TestScannerScan(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    []types.RetireFileResult
		wantErr error
	}{
		{
			name:   "vulnerable plugin, retire exits non-zero",
			script: "echo '" + lodashReport + "'\nexit 13",
			want: []types.RetireFileResult{
				{
					Component: "lodash",
					Version:   "4.0.0",
					Vulnerabilities: types.Vulnerabilities{
						{Severity: "high", Info: []string{"CVE-2020-1234"}},
					},
				},
			},
		},
		{
			name:   "empty output",
			script: "exit 0",
			want:   []types.RetireFileResult{},
		},
		{
			name:   "no data array",
			script: `echo '{"messages":[]}'`,
			want:   []types.RetireFileResult{},
		},
		{
			name:    "malformed output",
			script:  "echo 'Could not read repository'",
			wantErr: ErrMalformedOutput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScanner(fakeRetire(t, tc.script), 10*time.Second, nil)
			got, err := s.Scan(context.Background(), t.TempDir())

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScannerScanArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	s := NewScanner(fakeRetire(t, `printf '%s\n' "$@" > `+argsFile), 10*time.Second, nil)

	pluginPath := filepath.Join(t.TempDir(), "My Plugin")
	_, err := s.Scan(context.Background(), pluginPath)
	require.NoError(t, err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--path\n"+pluginPath+"\n--outputformat\njson\n", string(data))
}

func TestScannerScanTimeout(t *testing.T) {
	s := NewScanner(fakeRetire(t, "exec sleep 5"), 100*time.Millisecond, nil)
	got, err := s.Scan(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrScanTimedOut)
	assert.Nil(t, got)
}

func TestScannerScanMissingExecutable(t *testing.T) {
	s := NewScanner("vaultscan-missing-retire", 10*time.Second, nil)
	got, err := s.Scan(context.Background(), t.TempDir())
	assert.NoError(t, err)
	assert.Empty(t, got)
}
