package modelstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const checkpointPrefix = "checkpoint-"

// ErrNoCheckpoint is returned when a directory holds no checkpoint-N entries.
var ErrNoCheckpoint = errors.New("no checkpoints found")

// FindLatestCheckpoint returns the checkpoint-N directory with the highest N.
func FindLatestCheckpoint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read checkpoints dir: %w", err)
	}
	best, bestStep := "", -1
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), checkpointPrefix) {
			continue
		}
		step, err := strconv.Atoi(strings.TrimPrefix(e.Name(), checkpointPrefix))
		if err != nil {
			continue
		}
		if step > bestStep {
			best, bestStep = e.Name(), step
		}
	}
	if best == "" {
		return "", ErrNoCheckpoint
	}
	return filepath.Join(dir, best), nil
}

// ConvertCheckpoint copies a training checkpoint into a servable model
// directory and returns the number of files copied.
func ConvertCheckpoint(src, dst string) (int, error) {
	st, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("checkpoint directory not found: %w", err)
	}
	if !st.IsDir() {
		return 0, fmt.Errorf("checkpoint %s is not a directory", src)
	}
	if _, err := os.Stat(filepath.Join(src, RequiredFiles[0])); err != nil {
		return 0, fmt.Errorf("no model file found in checkpoint %s", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy checkpoint: %w", err)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}
