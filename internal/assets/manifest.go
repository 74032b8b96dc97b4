package assets

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/core"
)

func ManifestPath(bundlePath string) string {
	return filepath.Join(filepath.Dir(bundlePath), ManifestFile)
}

func WriteManifest(fsys fs.FileSystem, path string, m *core.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func LoadManifest(fsys fs.FileSystem, path string) (*core.Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return core.ParseManifest(data)
}
