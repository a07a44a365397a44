package modelstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDirs is the working layout for datasets and models under a root.
var ProjectDirs = []string{
	"data/raw",
	"data/processed",
	"data/cache",
	"data/examples",
	"data/splits",
	"data/statistics",
	"models/checkpoints",
}

// Bootstrap creates the project layout under root and returns the created
// (or already present) directories.
func Bootstrap(root string) ([]string, error) {
	out := make([]string, 0, len(ProjectDirs))
	for _, rel := range ProjectDirs {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return out, fmt.Errorf("create %s: %w", dir, err)
		}
		out = append(out, dir)
	}
	return out, nil
}
