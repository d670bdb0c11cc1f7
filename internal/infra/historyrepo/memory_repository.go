package historyrepo

import (
	"context"
	"sync"

	"github.com/vastr/panchanga/internal/domain/panchanga"
)

// MemoryRepository keeps the most recent entries in a ring for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	entries  []panchanga.HistoryEntry
}

// NewMemoryRepository constructs a repo holding at most capacity entries.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = panchanga.MaxHistoryLimit
	}
	return &MemoryRepository{capacity: capacity}
}

// Save implements panchanga.HistoryRepository.
func (r *MemoryRepository) Save(_ context.Context, entry panchanga.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	return nil
}

// Recent implements panchanga.HistoryRepository, newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]panchanga.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]panchanga.HistoryEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

var _ panchanga.HistoryRepository = (*MemoryRepository)(nil)
