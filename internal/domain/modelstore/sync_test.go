package modelstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubObjectStore struct {
	listFn     func(ctx context.Context, prefix string) ([]RemoteObject, error)
	downloaded map[string]string
}

func (s *stubObjectStore) List(ctx context.Context, prefix string) ([]RemoteObject, error) {
	return s.listFn(ctx, prefix)
}

func (s *stubObjectStore) Download(_ context.Context, key, dest string) error {
	if s.downloaded == nil {
		s.downloaded = map[string]string{}
	}
	s.downloaded[key] = dest
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(key), 0o644)
}

func TestSyncerPull(t *testing.T) {
	t.Parallel()

	var gotPrefix string
	store := &stubObjectStore{listFn: func(_ context.Context, prefix string) ([]RemoteObject, error) {
		gotPrefix = prefix
		return []RemoteObject{
			{Key: "models/bart-dialogsum/", Size: 0},
			{Key: "models/bart-dialogsum/config.json", Size: 2},
			{Key: "models/bart-dialogsum/tokenizer/vocab.json", Size: 5},
			{Key: "models/bart-dialogsum/../../escape.txt", Size: 1},
		}, nil
	}}
	dest := t.TempDir()

	n, err := NewSyncer(store, nil).Pull(context.Background(), "/models/bart-dialogsum/", dest)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "models/bart-dialogsum/", gotPrefix)
	require.Equal(t, filepath.Join(dest, "tokenizer", "vocab.json"), store.downloaded["models/bart-dialogsum/tokenizer/vocab.json"])
	require.Equal(t, filepath.Join(dest, "escape.txt"), store.downloaded["models/bart-dialogsum/../../escape.txt"])
}

func TestSyncerPullErrors(t *testing.T) {
	t.Parallel()

	empty := &stubObjectStore{listFn: func(context.Context, string) ([]RemoteObject, error) { return nil, nil }}
	_, err := NewSyncer(empty, nil).Pull(context.Background(), "models/x", t.TempDir())
	require.ErrorContains(t, err, "no objects")

	failing := &stubObjectStore{listFn: func(context.Context, string) ([]RemoteObject, error) {
		return nil, errors.New("access denied")
	}}
	_, err = NewSyncer(failing, nil).Pull(context.Background(), "models/x", t.TempDir())
	require.ErrorContains(t, err, "access denied")
}
