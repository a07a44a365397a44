package summarycache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

// ValkeyCache stores summaries in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "dialogsum"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get implements summarizer.Cache.
func (c *ValkeyCache) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	summary, err := c.client.Do(ctx, c.client.B().Get().Key(c.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return summary, true, nil
}

// Set implements summarizer.Cache.
func (c *ValkeyCache) Set(ctx context.Context, key, summary string, ttl time.Duration) error {
	if key == "" || summary == "" {
		return nil
	}
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(summary)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return fmt.Sprintf("%s:summary:%s", c.prefix, key)
}

var _ summarizer.Cache = (*ValkeyCache)(nil)
