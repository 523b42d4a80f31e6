package memory

import (
	"context"
	"sync"
	"time"

	"github.com/proximark/server/internal/attendance/store"
)

// AttendanceStore is an in-memory ledger keyed by (session, student).
type AttendanceStore struct {
	mu      sync.Mutex
	byPair  map[[2]string]store.AttendanceRecord
	ordered []store.AttendanceRecord
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{byPair: make(map[[2]string]store.AttendanceRecord)}
}

func (s *AttendanceStore) CreateIfAbsent(_ context.Context, rec store.AttendanceRecord) (bool, error) {
	if rec.MarkedAt.IsZero() {
		rec.MarkedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]string{rec.SessionID, rec.StudentID}
	if _, exists := s.byPair[key]; exists {
		return false, nil
	}
	s.byPair[key] = rec
	s.ordered = append(s.ordered, rec)
	return true, nil
}

func (s *AttendanceStore) Exists(_ context.Context, sessionID, studentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byPair[[2]string{sessionID, studentID}]
	return ok, nil
}

func (s *AttendanceStore) CountBySession(_ context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.byPair {
		if key[0] == sessionID {
			n++
		}
	}
	return n, nil
}

func (s *AttendanceStore) ListBySessionIDs(_ context.Context, sessionIDs []string) ([]store.AttendanceRecord, error) {
	wanted := make(map[string]struct{}, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.AttendanceRecord
	for _, rec := range s.ordered {
		if _, ok := wanted[rec.SessionID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Records returns a copy of all stored records.  Test-only helper.
func (s *AttendanceStore) Records() []store.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.AttendanceRecord, len(s.ordered))
	copy(out, s.ordered)
	return out
}
