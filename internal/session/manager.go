package session

import (
	"sync"

	"lastmile/domain/core"
	"lastmile/internal"
	"lastmile/internal/pipeline"
)

// Manager holds the live sessions in memory, keyed by ID. Sessions are
// strictly isolated: field resolution and the lateness threshold are
// dataset-specific and must never leak between concurrent users, so every
// session gets its own loaded dataset.
type Manager struct {
	loader      *pipeline.Loader
	maxSessions int
	log         *internal.Logger

	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

// NewManager creates a session manager. maxSessions caps memory use; when
// the cap is hit the oldest session is evicted.
func NewManager(loader *pipeline.Loader, maxSessions int) *Manager {
	return &Manager{
		loader:      loader,
		maxSessions: maxSessions,
		log:         internal.DefaultLogger.WithComponent("SessionManager"),
		sessions:    make(map[core.SessionID]*Session),
	}
}

// Create loads the dataset at path and opens a session over it. Every call
// reloads and reprocesses the file from scratch; no state is shared with
// other sessions.
func (m *Manager) Create(path string) (*Session, error) {
	dataset, err := m.loader.Load(path)
	if err != nil {
		return nil, err
	}

	sess := New(dataset)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}
	m.sessions[sess.ID] = sess

	m.log.Info("session %s opened for %s (%d records)", sess.ID, path, len(dataset.Records))
	return sess, nil
}

// Get retrieves a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	parsed, err := core.ParseID(id)
	if err != nil {
		return nil, core.ErrSessionNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[parsed]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return sess, nil
}

// Delete closes a session.
func (m *Manager) Delete(id string) error {
	parsed, err := core.ParseID(id)
	if err != nil {
		return core.ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[parsed]; !ok {
		return core.ErrSessionNotFound
	}
	delete(m.sessions, parsed)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) evictOldestLocked() {
	var oldest *Session
	for _, sess := range m.sessions {
		if oldest == nil || sess.CreatedAt.Before(oldest.CreatedAt) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.ID)
		m.log.Warn("session cap reached, evicted oldest session %s", oldest.ID)
	}
}
