package scan

import (
	"runtime"

	"github.com/obsidian-security/vaultscan/pkg/render"
	"github.com/obsidian-security/vaultscan/pkg/retire"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the `scan` subcommand.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the plugins of a vault",
		Long:  "Scan every community plugin installed in an Obsidian vault for JavaScript libraries with known vulnerabilities, using retire.js.",
		Example: `  vaultscan scan --vault-path ~/Documents/Notes
  vaultscan scan -p ~/Documents/Notes --withCVE
  vaultscan scan -p ~/Documents/Notes --exit-code 1 --retire-cmd retire`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd)
			if err != nil {
				return err
			}
			opts, err := ParseOptions(v)
			if err != nil {
				return err
			}

			r := render.New(opts.WithCVE)
			r.Out = cmd.OutOrStdout()
			r.SortBySeverity = opts.SortBySeverity

			o := &Orchestrator{
				Scanner:  retire.NewScanner(opts.RetireCommand, opts.Timeout, log.StandardLogger()),
				Renderer: r,
				Log:      log.StandardLogger(),
				Usage:    cmd.Usage,
			}
			return o.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP(keyVaultPath, "p", "", "Path to the Obsidian vault")
	flags.Bool(keyWithCVE, false, "Include CVE information in the output")
	flags.Int(keyParallelism, runtime.NumCPU(), "Maximum number of plugins scanned at once (0 for no limit)")
	flags.Duration(keyTimeout, retire.DefaultTimeout, "Timeout for each retire.js invocation (0 for no timeout)")
	flags.String(keyRetireCommand, retire.DefaultCommand, "Command used to run retire.js")
	flags.Bool(keySortBySeverity, false, "Order each plugin's findings from critical to low")
	flags.Int(keyExitCode, 0, "Exit code to use when vulnerabilities are found")

	return cmd
}
