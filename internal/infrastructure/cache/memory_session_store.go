package cache

import (
	"context"
	"sync"
	"time"

	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

const memoryCleanupInterval = 5 * time.Minute

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in a map with a sliding TTL.
// Sessions do not survive a restart and are not shared across instances.
type MemorySessionStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemorySessionStore starts a store and its expiry sweeper
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		entries:  make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

func (s *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*session.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return nil, shared.ErrNotFound
	}
	return decodeSession(e.data)
}

// Save stores the session and restarts its TTL
func (s *MemorySessionStore) Save(_ context.Context, sess *session.Session) error {
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[sess.ID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Ping(context.Context) error {
	return nil
}

// Size reports stored sessions, expired ones included until swept
func (s *MemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *MemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemorySessionStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

var _ session.Store = (*MemorySessionStore)(nil)
