package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory.
// Suitable for a single instance and for tests; everything is lost on restart.
type MemoryStore struct {
	byToken map[string]*Session
	tokens  map[string]string // id -> token
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken: make(map[string]*Session),
		tokens:  make(map[string]string),
	}
}

// Create persists a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.byToken[s.Token] = s.Clone()
	m.tokens[s.ID] = s.Token
	return nil
}

// Get retrieves a session by token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.byToken[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return s.Clone(), nil
}

// Update replaces the stored session, following a token rotation if any.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.tokens[s.ID]
	if !ok {
		return ErrNotFound
	}
	if old != s.Token {
		delete(m.byToken, old)
	}
	m.byToken[s.Token] = s.Clone()
	m.tokens[s.ID] = s.Token
	return nil
}

// Delete removes a session by ID. Deleting an unknown session is not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, ok := m.tokens[id]; ok {
		delete(m.byToken, token)
		delete(m.tokens, id)
	}
	return nil
}

// DeleteExpired drops every expired session.
func (m *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var n int64
	for token, s := range m.byToken {
		if now.After(s.ExpiresAt) {
			delete(m.byToken, token)
			delete(m.tokens, s.ID)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byToken)
}
