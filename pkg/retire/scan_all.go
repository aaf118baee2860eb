package retire

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/obsidian-security/vaultscan/pkg/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Runner scans a single plugin directory.
type Runner interface {
	Scan(ctx context.Context, pluginPath string) ([]types.RetireFileResult, error)
}

// ScanAll scans every plugin concurrently, at most parallelism at a time
// (unbounded when parallelism <= 0), and waits for all of them. A failing
// plugin is logged and reported with no results; it never stops the others.
// Results are in the same order as plugins. The returned error, if any,
// aggregates the per-plugin failures, each of which is also logged to log.
func ScanAll(ctx context.Context, log logrus.FieldLogger, runner Runner, plugins []types.PluginManifest, parallelism int) ([]types.PluginScanResult, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	results := make([]types.PluginScanResult, len(plugins))

	var (
		mu    sync.Mutex
		diags *multierror.Error
	)

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, plugin := range plugins {
		g.Go(func() error {
			found, err := runner.Scan(ctx, plugin.Path)
			if err != nil {
				switch {
				case errors.Is(err, ErrScanTimedOut):
					log.Errorf("retire.js timed out scanning %s", plugin.Path)
				case errors.Is(err, context.Canceled):
					log.Warnf("Scan of %s was cancelled", plugin.Path)
				default:
					log.Errorf("Failed to parse retire.js output for %s", plugin.Path)
				}
				log.Debugf("%s: %v", plugin.Path, err)

				mu.Lock()
				diags = multierror.Append(diags, err)
				mu.Unlock()
				found = nil
			}

			results[i] = types.PluginScanResult{
				Plugin:  plugin,
				Results: found,
			}
			return nil
		})
	}

	// Workers never return errors, failures are collected in diags.
	_ = g.Wait()

	return results, diags.ErrorOrNil()
}
