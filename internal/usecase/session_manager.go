package usecase

import (
	"sync"
	"time"
)

// managedSession tracks when a session was last touched
type managedSession struct {
	session  *SearchSession
	lastSeen time.Time
}

// SessionManager hands out one SearchSession per popup lifecycle, keyed by
// a client-chosen id, and expires sessions that have gone quiet.
type SessionManager struct {
	catalog      *CatalogService
	previewLimit int
	ttl          time.Duration

	mu       sync.Mutex
	sessions map[string]*managedSession
}

// NewSessionManager creates a manager whose sessions share one catalog
func NewSessionManager(catalog *CatalogService, previewLimit int, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	m := &SessionManager{
		catalog:      catalog,
		previewLimit: previewLimit,
		ttl:          ttl,
		sessions:     make(map[string]*managedSession),
	}

	// Cleanup goroutine drops idle sessions periodically
	go m.cleanupIdle()

	return m
}

// Get returns the session for id, creating it on first use
func (m *SessionManager) Get(id string) *SearchSession {
	if id == "" {
		id = "default"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[id]
	if !exists {
		entry = &managedSession{session: NewSearchSession(m.catalog, m.previewLimit)}
		m.sessions[id] = entry
	}
	entry.lastSeen = time.Now()

	return entry.session
}

// Remove drops a session, as when its popup closes
func (m *SessionManager) Remove(id string) {
	if id == "" {
		id = "default"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions (for debugging/monitoring)
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// cleanupIdle removes sessions not touched within the TTL
func (m *SessionManager) cleanupIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-m.ttl)
		m.mu.Lock()
		for id, entry := range m.sessions {
			if entry.lastSeen.Before(cutoff) {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
