package game

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the in-memory registry of active sessions. A session's
// presence in the store doubles as its "not yet finalized" flag: Remove
// is an atomic check-and-remove, so exactly one caller wins the terminal
// path.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Put registers a session.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns a session by ID.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Contains reports whether the session is still active.
func (st *Store) Contains(id uuid.UUID) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.sessions[id]
	return ok
}

// Remove evicts a session and reports whether it was present. The first
// remover owns finalization; later callers get false and must no-op.
func (st *Store) Remove(id uuid.UUID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// FindByClient scans for the session a connection participates in. Used
// by disconnect handling. The session list is snapshotted first so the
// per-session locks are never taken while holding the store lock.
func (st *Store) FindByClient(connID uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	snapshot := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		snapshot = append(snapshot, s)
	}
	st.mu.RUnlock()

	for _, s := range snapshot {
		s.mu.Lock()
		_, ok := s.sideOf(connID)
		s.mu.Unlock()
		if ok {
			return s, true
		}
	}
	return nil, false
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
