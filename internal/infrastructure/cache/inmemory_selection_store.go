package cache

import (
	"context"
	"sync"
	"time"

	"github.com/markethub/backend/internal/domain/subscription"
)

// selectionEntry represents a stored selection with expiration
type selectionEntry struct {
	sel       subscription.Selection
	expiresAt time.Time
}

// InMemorySelectionStore implements SelectionStore using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySelectionStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]selectionEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySelectionStore creates a new in-memory selection store
// It starts a background goroutine to clean up expired entries
func NewInMemorySelectionStore(ttl time.Duration) *InMemorySelectionStore {
	store := &InMemorySelectionStore{
		ttl:      ttl,
		entries:  make(map[string]selectionEntry),
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put stores the pending selection for a user, refreshing the TTL
func (s *InMemorySelectionStore) Put(ctx context.Context, userKey string, sel subscription.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userKey] = selectionEntry{
		sel:       sel,
		expiresAt: time.Now().Add(s.ttl),
	}

	return nil
}

// Get retrieves the pending selection; found is false when absent or expired
func (s *InMemorySelectionStore) Get(ctx context.Context, userKey string) (subscription.Selection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[userKey]
	if !exists {
		return subscription.Selection{}, false, nil
	}

	// Check if entry has expired
	if time.Now().After(e.expiresAt) {
		return subscription.Selection{}, false, nil
	}

	return e.sel, true, nil
}

// Clear removes the pending selection. Clearing an absent slot is not an error.
func (s *InMemorySelectionStore) Clear(ctx context.Context, userKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userKey)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemorySelectionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemorySelectionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *InMemorySelectionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userKey, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, userKey)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemorySelectionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemorySelectionStore implements SelectionStore
var _ subscription.SelectionStore = (*InMemorySelectionStore)(nil)
