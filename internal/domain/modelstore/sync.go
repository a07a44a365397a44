package modelstore

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
)

// RemoteObject is an entry of a remote model directory listing.
type RemoteObject struct {
	Key  string
	Size int64
}

// ObjectStore is the remote storage holding published model directories.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]RemoteObject, error)
	Download(ctx context.Context, key, dest string) error
}

// Syncer pulls model directories from an ObjectStore.
type Syncer struct {
	store  ObjectStore
	logger *slog.Logger
}

// NewSyncer constructs a Syncer.
func NewSyncer(store ObjectStore, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{store: store, logger: logger.With("component", "modelstore.sync")}
}

// Pull downloads every object under prefix into dest, keeping the relative
// layout, and returns the number of files written.
func (s *Syncer) Pull(ctx context.Context, prefix, dest string) (int, error) {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", prefix, err)
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("no objects under %q", prefix)
	}

	pulled := 0
	for _, obj := range objects {
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			continue
		}
		// Rooting the key first keeps ".." segments inside dest.
		clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
		if clean == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(clean))
		if err := s.store.Download(ctx, obj.Key, target); err != nil {
			return pulled, fmt.Errorf("download %s: %w", obj.Key, err)
		}
		s.logger.Debug("pulled model file", "key", obj.Key, "size", obj.Size)
		pulled++
	}
	s.logger.Info("model pulled", "prefix", prefix, "dest", dest, "files", pulled)
	return pulled, nil
}
