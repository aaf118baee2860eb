package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/obsidian-security/vaultscan/pkg/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	configDirName    = ".obsidian"
	pluginsDirName   = "plugins"
	manifestFileName = "manifest.json"
)

// PluginsDir returns the conventional plugins directory of a vault.
func PluginsDir(vaultPath string) string {
	return filepath.Join(vaultPath, configDirName, pluginsDirName)
}

// ScanPlugins lists the plugins installed in a vault. A missing or invalid
// plugins directory yields an empty result and an error describing why.
// Plugin folders without a readable manifest are skipped.
func ScanPlugins(vaultPath string) ([]types.PluginManifest, error) {
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		abs = vaultPath
	}
	pluginsDir := PluginsDir(abs)

	info, err := os.Stat(pluginsDir)
	if err != nil {
		return []types.PluginManifest{}, fmt.Errorf("%w: %s: %v", ErrPluginsDirNotFound, pluginsDir, err)
	}
	if !info.IsDir() {
		return []types.PluginManifest{}, fmt.Errorf("%w: %s", ErrPluginsDirNotDirectory, pluginsDir)
	}

	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return []types.PluginManifest{}, fmt.Errorf("%w: %s: %v", ErrPluginsDirNotFound, pluginsDir, err)
	}

	manifests := make([]types.PluginManifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginDir := filepath.Join(pluginsDir, entry.Name())
		m, err := LoadManifest(pluginDir)
		if err != nil {
			log.Debugf("Skipping %s: %v", pluginDir, err)
			continue
		}

		manifests = append(manifests, *m)
	}

	return manifests, nil
}

// LoadManifest reads manifest.json from a plugin directory.
func LoadManifest(pluginDir string) (*types.PluginManifest, error) {
	data, err := os.ReadFile(filepath.Join(pluginDir, manifestFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}

	// null decodes into a zero manifest without error.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, ErrManifestNull
	}

	var m types.PluginManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}
	m.Path = pluginDir

	return &m, nil
}
