package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
)

// BucketStore reads published model files from an S3-compatible bucket
// (R2, MinIO, S3).
type BucketStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewBucketStore constructs the store. endpoint may carry a scheme; https
// enables TLS.
func NewBucketStore(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*BucketStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("artifacts bucket is required")
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	if cleanEndpoint == "" {
		return nil, fmt.Errorf("artifacts endpoint is required")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init artifacts client: %w", err)
	}
	return &BucketStore{client: client, bucket: bucket, logger: logger.With("component", "artifacts.bucket")}, nil
}

// List returns every object below prefix.
func (s *BucketStore) List(ctx context.Context, prefix string) ([]modelstore.RemoteObject, error) {
	var out []modelstore.RemoteObject
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		out = append(out, modelstore.RemoteObject{Key: obj.Key, Size: obj.Size})
	}
	return out, nil
}

// Download writes the object to dest, creating parent directories.
func (s *BucketStore) Download(ctx context.Context, key, dest string) error {
	if err := s.client.FGetObject(ctx, s.bucket, key, dest, minio.GetObjectOptions{}); err != nil {
		return err
	}
	s.logger.Debug("object downloaded", "key", key, "dest", dest)
	return nil
}

var _ modelstore.ObjectStore = (*BucketStore)(nil)

// sanitizeEndpoint strips the scheme and any path, as minio.New expects a
// bare host[:port].
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
