// Package session keeps live configurator sessions for the API server.
//
// A session wraps one [kitchen.Configurator] under an id generated with
// google/uuid. Configurators are not safe for concurrent use, so every
// access goes through [Session.Do], which serializes events per session the
// way a UI event loop would.
//
// Sessions live in memory for the lifetime of the process and expire after
// a period without use. Nothing is persisted.
//
// # Usage
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess, err := store.Create(ctx, k)
//
//	err = sess.Do(func(k *kitchen.Configurator) error {
//	    return k.Add("drawer40")
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/observability"
)

// DefaultTTL is how long a session survives without use.
const DefaultTTL = 2 * time.Hour

// Session is one live configurator.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	expiresAt time.Time
	ttl       time.Duration
	k         *kitchen.Configurator
}

// Do runs fn with exclusive access to the configurator and extends the
// session's lifetime.
func (s *Session) Do(fn func(k *kitchen.Configurator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	return fn(s.k)
}

// Snapshot returns the configurator's current snapshot.
func (s *Session) Snapshot() kitchen.Snapshot {
	var snap kitchen.Snapshot
	s.Do(func(k *kitchen.Configurator) error {
		snap = k.Snapshot()
		return nil
	})
	return snap
}

// ExpiresAt returns when the session expires if left unused.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// Store is the interface for session storage backends.
type Store interface {
	// Create registers a new session around k.
	Create(ctx context.Context, k *kitchen.Configurator) (*Session, error)

	// Get returns the session with the given id. Unknown and expired ids
	// return an ErrCodeSessionNotFound error.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many it removed.
	Cleanup(ctx context.Context) (int, error)
}

// MemoryStore keeps sessions in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore creates an empty store. A non-positive ttl means
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{sessions: make(map[string]*Session), ttl: ttl}
}

// Create implements Store.
func (m *MemoryStore) Create(ctx context.Context, k *kitchen.Configurator) (*Session, error) {
	if k == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session needs a configurator")
	}
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		expiresAt: now.Add(m.ttl),
		ttl:       m.ttl,
		k:         k,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	observability.Session().OnSessionCreated(ctx, s.ID)
	return s, nil
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	if s.IsExpired() {
		m.Delete(ctx, id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q expired", id)
	}
	return s, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		observability.Session().OnSessionDeleted(ctx, id)
	}
	return nil
}

// Cleanup implements Store.
func (m *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.IsExpired() {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		observability.Session().OnSessionDeleted(ctx, id)
	}
	return len(expired), nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Cleanup(ctx)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
