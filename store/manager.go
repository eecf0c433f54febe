package store

import (
	"context"
	"sync"
)

// Manager hands out one Store per authenticated user. A store is built and
// loaded on first use and dropped on logout; requests for the same user in
// between share the same snapshot.
type Manager struct {
	mu       sync.Mutex
	gateway  Gateway
	sessions map[string]*Store
}

func NewManager(gateway Gateway) *Manager {
	return &Manager{
		gateway:  gateway,
		sessions: make(map[string]*Store),
	}
}

// Get returns the user's session store, loading it from the gateway the
// first time. The manager lock covers the load so a half-initialized store
// is never handed out.
func (m *Manager) Get(ctx context.Context, userID string) (*Store, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}

	s := New(m.gateway, userID)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	m.sessions[userID] = s
	return s, nil
}

// Drop tears down the user's session store, typically on logout.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
