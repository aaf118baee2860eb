package scan

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyVaultPath      = "vault-path"
	keyWithCVE        = "withCVE"
	keyParallelism    = "parallelism"
	keyTimeout        = "timeout"
	keyRetireCommand  = "retire-cmd"
	keySortBySeverity = "sort-severity"
	keyExitCode       = "exit-code"

	// KeyConfig is the root flag naming an optional config file.
	KeyConfig = "config"

	envPrefix = "VAULTSCAN"
)

// Options configures one scan.
type Options struct {
	VaultPath      string
	WithCVE        bool
	Parallelism    int
	Timeout        time.Duration
	RetireCommand  string
	SortBySeverity bool
	ExitCode       int
}

// newViper layers the command's flags over VAULTSCAN_* environment variables
// and, when --config is set, a config file.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	if f := cmd.Flag(KeyConfig); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", f.Value.String())
		}
	}

	return v, nil
}

// ParseOptions reads the scan options from v.
func ParseOptions(v *viper.Viper) (*Options, error) {
	options := &Options{
		VaultPath:      strings.TrimSpace(v.GetString(keyVaultPath)),
		WithCVE:        v.GetBool(keyWithCVE),
		Parallelism:    v.GetInt(keyParallelism),
		Timeout:        v.GetDuration(keyTimeout),
		RetireCommand:  strings.TrimSpace(v.GetString(keyRetireCommand)),
		SortBySeverity: v.GetBool(keySortBySeverity),
		ExitCode:       v.GetInt(keyExitCode),
	}

	if options.Timeout < 0 {
		return nil, errors.Errorf("invalid --%s %v: must not be negative", keyTimeout, options.Timeout)
	}
	if options.ExitCode < 0 || options.ExitCode > 255 {
		return nil, errors.Errorf("invalid --%s %d: must be between 0 and 255", keyExitCode, options.ExitCode)
	}

	return options, nil
}
