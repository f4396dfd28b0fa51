// Package session holds each user session's loaded dataset in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RMahshie/tabled/internal/dataset"
)

// Session is one loaded dataset and its optional resampled derivative. The
// Table is replaced wholesale on a new load and never mutated in place;
// Resampled is recomputed on every resample action.
type Session struct {
	ID         uuid.UUID
	Name       string
	Format     dataset.Format
	Table      *dataset.Table
	Resampled  *dataset.Table
	ArchiveKey string
	CreatedAt  time.Time
}

// Store is an in-memory session registry keyed by dataset ID. Individual
// sessions are not mutated concurrently (one synchronous interaction at a
// time per session); the lock protects the map itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes and returns the session, if present.
func (s *Store) Delete(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return sess, ok
}

// SetResampled replaces the session's resampled table.
func (s *Store) SetResampled(id uuid.UUID, t *dataset.Table) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Resampled = t
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
