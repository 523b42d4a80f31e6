package memory

import (
	"context"
	"sync"

	"github.com/proximark/server/internal/attendance/store"
)

type CourseStore struct {
	mu          sync.Mutex
	courses     map[string]store.Course
	enrollments map[string][]string // courseID -> studentIDs
	students    *StudentStore
}

// NewCourseStore shares the student store so enrolled-student lookups see
// current binding/registration state.
func NewCourseStore(students *StudentStore) *CourseStore {
	return &CourseStore{
		courses:     make(map[string]store.Course),
		enrollments: make(map[string][]string),
		students:    students,
	}
}

func (s *CourseStore) AddCourse(c store.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c
}

func (s *CourseStore) Enroll(courseID, studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.enrollments[courseID] {
		if id == studentID {
			return
		}
	}
	s.enrollments[courseID] = append(s.enrollments[courseID], studentID)
}

func (s *CourseStore) GetByID(_ context.Context, courseID string) (store.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[courseID]
	if !ok {
		return store.Course{}, store.ErrCourseNotFound
	}
	return c, nil
}

func (s *CourseStore) ListByFaculty(_ context.Context, facultyID string) ([]store.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Course
	for _, c := range s.courses {
		if c.FacultyID == facultyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CourseStore) ListForStudent(_ context.Context, studentID string) ([]store.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Course
	for courseID, studentIDs := range s.enrollments {
		for _, id := range studentIDs {
			if id == studentID {
				if c, ok := s.courses[courseID]; ok {
					out = append(out, c)
				}
				break
			}
		}
	}
	return out, nil
}

func (s *CourseStore) ListEnrolledStudents(ctx context.Context, courseID string) ([]store.Student, error) {
	s.mu.Lock()
	ids := append([]string(nil), s.enrollments[courseID]...)
	s.mu.Unlock()

	out := make([]store.Student, 0, len(ids))
	for _, id := range ids {
		st, err := s.students.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *CourseStore) CountEnrolled(_ context.Context, courseID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments[courseID]), nil
}
