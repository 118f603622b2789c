package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
)

// memoryIdempotencyStore keeps cached checkout responses in memory with a
// TTL. Keys are scoped per session, so two cashiers reusing the same key
// never see each other's receipts.
type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[idempotencyKey]*repository.CachedResponse
	ttl     time.Duration
}

type idempotencyKey struct {
	key       string
	sessionID uuid.UUID
}

// NewMemoryIdempotencyStore creates an in-memory idempotency store. A
// background loop evicts expired entries.
func NewMemoryIdempotencyStore(ttl time.Duration) repository.IdempotencyStore {
	s := &memoryIdempotencyStore{
		entries: make(map[idempotencyKey]*repository.CachedResponse),
		ttl:     ttl,
	}
	go s.cleanupLoop()
	return s
}

func (s *memoryIdempotencyStore) Get(key string, sessionID uuid.UUID) (*repository.CachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[idempotencyKey{key, sessionID}]
	if !ok {
		return nil, false
	}
	if time.Since(entry.StoredAt) > s.ttl {
		delete(s.entries, idempotencyKey{key, sessionID})
		return nil, false
	}
	return entry, true
}

func (s *memoryIdempotencyStore) Put(key string, sessionID uuid.UUID, resp *repository.CachedResponse) {
	s.mu.Lock()
	s.entries[idempotencyKey{key, sessionID}] = resp
	s.mu.Unlock()
}

func (s *memoryIdempotencyStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for k, entry := range s.entries {
			if entry.StoredAt.Before(cutoff) {
				delete(s.entries, k)
			}
		}
		s.mu.Unlock()
	}
}
