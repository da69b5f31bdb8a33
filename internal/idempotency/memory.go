package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemorySize = 10000

// MemoryStore is the single-process fallback used when no table is
// configured. Entries expire after ttl and the oldest are evicted past size.
type MemoryStore struct {
	mu      sync.Mutex
	cache   *expirable.LRU[string, Record]
	nowFunc func() time.Time
	ttl     time.Duration
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &MemoryStore{
		cache:   expirable.NewLRU[string, Record](size, nil, ttl),
		nowFunc: time.Now,
		ttl:     ttl,
	}
}

func (s *MemoryStore) Reserve(_ context.Context, scope, key string) (*Record, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	if existing, ok := s.cache.Get(key); ok && !existing.Expired(now) {
		return &existing, false, nil
	}

	rec := Record{
		IdempotencyKey: key,
		Scope:          scope,
		Status:         StatusInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(s.ttl).Unix(),
	}
	s.cache.Add(key, rec)
	return &rec, true, nil
}

func (s *MemoryStore) Complete(_ context.Context, key string, orderID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cache.Peek(key)
	if !ok {
		return nil
	}
	rec.Status = StatusDone
	rec.OrderID = orderID
	rec.UpdatedAt = s.nowFunc()
	s.cache.Add(key, rec)
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
	return nil
}

// Len reports live entries.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
