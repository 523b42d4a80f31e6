package memory

import (
	"context"
	"sync"
	"time"

	"github.com/proximark/server/internal/attendance/store"
)

// SessionStore is a mutex-guarded in-memory SessionStore for tests and dev.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]store.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]store.Session)}
}

func (s *SessionStore) CreateActive(_ context.Context, sess store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions {
		if existing.CourseID == sess.CourseID && existing.Active {
			return store.ErrSessionActive
		}
	}
	sess.Active = true
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Stop(_ context.Context, sessionID string, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return store.ErrSessionNotFound
	}
	if !sess.Active {
		return nil
	}
	sess.Active = false
	sess.EndedAt = &at
	s.sessions[sessionID] = sess
	return nil
}

func (s *SessionStore) GetByID(_ context.Context, sessionID string) (store.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return store.Session{}, store.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) ActiveByCourse(_ context.Context, courseID string) (*store.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.CourseID == courseID && sess.Active {
			out := sess
			return &out, nil
		}
	}
	return nil, nil
}

func (s *SessionStore) ListByCourse(_ context.Context, courseID string) ([]store.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Session
	for _, sess := range s.sessions {
		if sess.CourseID == courseID {
			out = append(out, sess)
		}
	}
	// Newest first, matching the sqlite store's ordering.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartedAt.After(out[i].StartedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}
