package wire

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds per-connection state.
type Session struct {
	ID           string    `json:"id"`
	Runs         []string  `json:"runs"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`

	// cancel ends the connection serving the session.
	cancel context.CancelFunc
}

// NewSession creates a session with a fresh ID.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// AddRun records the ID of a run generated in this session.
func (s *Session) AddRun(id string) {
	s.Runs = append(s.Runs, id)
}

// IsIdle returns true if the session has been idle longer than timeout.
func (s *Session) IsIdle(timeout time.Duration) bool {
	return time.Since(s.LastActiveAt) > timeout
}

// Sessions tracks open sessions.
type Sessions struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTimeout time.Duration
}

// NewSessions creates a session registry. Sessions idle for longer than
// idleTimeout are dropped by Get and Cleanup; Cleanup also ends their
// connection.
func NewSessions(idleTimeout time.Duration) *Sessions {
	return &Sessions{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
	}
}

// Create creates and registers a new session. cancel, if not nil, is called
// when the session is dropped for being idle.
func (m *Sessions) Create(cancel context.CancelFunc) *Session {
	s := NewSession()
	s.cancel = cancel
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given ID, or nil.
func (m *Sessions) Get(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	idle := ok && s.IsIdle(m.idleTimeout)
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if idle {
		m.Remove(id)
		return nil
	}
	return s
}

// Touch marks the session as active now.
func (m *Sessions) Touch(id string) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		s.LastActiveAt = time.Now()
	}
	m.mu.Unlock()
}

// Remove deletes a session.
func (m *Sessions) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of registered sessions.
func (m *Sessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup removes idle sessions and ends their connections.
func (m *Sessions) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.IsIdle(m.idleTimeout) {
			delete(m.sessions, id)
			if s.cancel != nil {
				s.cancel()
			}
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (m *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}
