package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/obsidian-security/vaultscan/pkg/scan"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// set by goreleaser ldflags
var version = "dev"

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "vaultscan",
		Short:         "A CLI to scan community plugins in an Obsidian vault.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.String(scan.KeyConfig, "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(scan.NewScanCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return rootCmd
}

// exitCode maps a command error to the process exit status. Errors whose
// remediation was already logged are not repeated.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *scan.ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if !errors.Is(err, scan.ErrScannerUnavailable) && !errors.Is(err, scan.ErrVaultPathRequired) {
		log.Error(err)
	}
	return 1
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if code := exitCode(err); code != 0 {
		os.Exit(code)
	}
}
