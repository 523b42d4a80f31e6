package memory

import (
	"context"
	"sync"

	"github.com/proximark/server/internal/attendance/store"
)

type StudentStore struct {
	mu       sync.Mutex
	students map[string]store.Student
}

func NewStudentStore(students ...store.Student) *StudentStore {
	m := make(map[string]store.Student, len(students))
	for _, st := range students {
		m[st.ID] = st
	}
	return &StudentStore{students: m}
}

func (s *StudentStore) GetByID(_ context.Context, studentID string) (store.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[studentID]
	if !ok {
		return store.Student{}, store.ErrStudentNotFound
	}
	return st, nil
}

func (s *StudentStore) BindDeviceIfUnset(_ context.Context, studentID, fingerprint string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[studentID]
	if !ok {
		return "", store.ErrStudentNotFound
	}
	if st.DeviceFingerprint != "" {
		return st.DeviceFingerprint, nil
	}
	st.DeviceFingerprint = fingerprint
	s.students[studentID] = st
	return fingerprint, nil
}

func (s *StudentStore) SetFaceDescriptor(_ context.Context, studentID string, descriptor []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[studentID]
	if !ok {
		return store.ErrStudentNotFound
	}
	st.FaceDescriptor = append([]float64(nil), descriptor...)
	s.students[studentID] = st
	return nil
}
