package manifest

import "errors"

var (
	// ErrPluginsDirNotFound is returned when <vault>/.obsidian/plugins cannot be accessed.
	ErrPluginsDirNotFound = errors.New("plugins directory not accessible")

	// ErrPluginsDirNotDirectory is returned when the plugins path exists but is a file.
	ErrPluginsDirNotDirectory = errors.New("plugins path is not a directory")

	// ErrManifestNull is returned when manifest.json holds a JSON null.
	ErrManifestNull = errors.New("manifest is null")
)
