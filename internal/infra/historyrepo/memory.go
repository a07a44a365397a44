package historyrepo

import (
	"context"
	"sync"

	"github.com/yanqian/dialogsum/internal/domain/history"
)

const defaultMemoryCapacity = 100

// MemoryRepository keeps the newest entries in a fixed size ring.
type MemoryRepository struct {
	mu       sync.RWMutex
	entries  []history.Entry
	next     int
	full     bool
	capacity int
}

// NewMemoryRepository constructs a ring holding at most capacity entries.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRepository{entries: make([]history.Entry, capacity), capacity: capacity}
}

// Save implements history.Repository.
func (r *MemoryRepository) Save(_ context.Context, entry history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = entry
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent implements history.Repository, newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	size := r.next
	if r.full {
		size = r.capacity
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]history.Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + r.capacity) % r.capacity
		out = append(out, r.entries[idx])
	}
	return out, nil
}

var _ history.Repository = (*MemoryRepository)(nil)
