package scan

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/obsidian-security/vaultscan/pkg/manifest"
	"github.com/obsidian-security/vaultscan/pkg/render"
	"github.com/obsidian-security/vaultscan/pkg/retire"
	"github.com/sirupsen/logrus"
)

// For testing.
var scanPlugins = manifest.ScanPlugins

// Scanner is a vulnerability scanner that can tell whether it is installed.
type Scanner interface {
	retire.Runner
	Available(ctx context.Context) bool
}

// Orchestrator runs the scan workflow: check the scanner, list the vault's
// plugins, scan them and print the findings.
type Orchestrator struct {
	Scanner  Scanner
	Renderer *render.Renderer
	Log      logrus.FieldLogger

	// Usage prints command help when required input is missing.
	Usage func() error
}

// Run executes one scan. It returns ErrScannerUnavailable or
// ErrVaultPathRequired when it cannot start, and an *ExitCodeError when
// vulnerabilities were found and opts.ExitCode is set.
func (o *Orchestrator) Run(ctx context.Context, opts *Options) error {
	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if !o.Scanner.Available(ctx) {
		log.Error("Retire.js is not installed. Please install it using your preferred package manager:")
		for _, hint := range retire.InstallHints {
			log.Info(hint)
		}
		return ErrScannerUnavailable
	}

	if opts.VaultPath == "" {
		log.Error("The vault path is required.")
		if o.Usage != nil {
			_ = o.Usage()
		}
		return ErrVaultPathRequired
	}

	plugins, err := scanPlugins(opts.VaultPath)
	if err != nil {
		log.Errorf("Error accessing plugins path: %v", err)
		log.Error("Please ensure the vault path is correct and contains an .obsidian/plugins directory.")
	}
	if len(plugins) == 0 {
		log.Info("No plugins found or an error occurred.")
		return nil
	}

	o.Renderer.Plugins(plugins)

	log.Info("Scanning plugins for vulnerabilities...")
	results, err := retire.ScanAll(ctx, log, o.Scanner, plugins, opts.Parallelism)
	if merr, ok := err.(*multierror.Error); ok {
		log.Debugf("%d of %d plugins could not be scanned", merr.Len(), len(plugins))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	findings := o.Renderer.Results(results)
	if findings > 0 && opts.ExitCode != 0 {
		return &ExitCodeError{Code: opts.ExitCode, Findings: findings}
	}

	return nil
}
