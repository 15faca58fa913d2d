package store

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore implements PromptStore and SessionStore on an in-memory
// TTL cache. Entries expire rather than persist: durability is out of
// scope by design.
type MemoryStore struct {
	prompts  *gocache.Cache
	sessions *gocache.Cache
	ttl      time.Duration

	// Serializes the read-modify-write in Append; go-cache only guards
	// individual operations.
	mu sync.Mutex
}

// NewMemoryStore creates a store with the given history TTL
func NewMemoryStore(promptTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		prompts:  gocache.New(promptTTL, cleanupInterval),
		sessions: gocache.New(gocache.NoExpiration, cleanupInterval),
		ttl:      promptTTL,
	}
}

// Append adds a prompt to the end of a user's history
func (s *MemoryStore) Append(userID string, p SavedPrompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []SavedPrompt
	if val, found := s.prompts.Get(userID); found {
		history = val.([]SavedPrompt)
	}
	history = append(history, p)
	s.prompts.Set(userID, history, s.ttl)
	return nil
}

// List returns a copy of a user's history in insertion order
func (s *MemoryStore) List(userID string) ([]SavedPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, found := s.prompts.Get(userID)
	if !found {
		return nil, nil
	}
	history := val.([]SavedPrompt)
	out := make([]SavedPrompt, len(history))
	copy(out, history)
	return out, nil
}

// Put stores a session until its expiry
func (s *MemoryStore) Put(sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	s.sessions.Set(sess.ID, sess, ttl)
	return nil
}

// Get looks up a live session by id
func (s *MemoryStore) Get(id string) (Session, bool) {
	val, found := s.sessions.Get(id)
	if !found {
		return Session{}, false
	}
	return val.(Session), true
}

// Delete removes a session
func (s *MemoryStore) Delete(id string) {
	s.sessions.Delete(id)
}
