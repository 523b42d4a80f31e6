package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/proximark/server/internal/attendance/store"
	dbpkg "github.com/proximark/server/internal/db"
)

type CourseStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewCourseStore(db *sql.DB, writer *dbpkg.Worker) *CourseStore {
	return &CourseStore{db: db, writer: writer}
}

func (s *CourseStore) GetByID(ctx context.Context, courseID string) (store.Course, error) {
	var c store.Course
	err := s.db.QueryRowContext(ctx, `
SELECT course_id, name, faculty_id FROM courses WHERE course_id = ?;
`, courseID).Scan(&c.ID, &c.Name, &c.FacultyID)
	if err == sql.ErrNoRows {
		return store.Course{}, store.ErrCourseNotFound
	}
	if err != nil {
		return store.Course{}, fmt.Errorf("GetByID: %w", err)
	}
	return c, nil
}

func (s *CourseStore) ListByFaculty(ctx context.Context, facultyID string) ([]store.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT course_id, name, faculty_id FROM courses
WHERE faculty_id = ? ORDER BY name;
`, facultyID)
	if err != nil {
		return nil, fmt.Errorf("ListByFaculty: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (s *CourseStore) ListForStudent(ctx context.Context, studentID string) ([]store.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.course_id, c.name, c.faculty_id
FROM courses c
JOIN enrollments e ON e.course_id = c.course_id
WHERE e.student_id = ?
ORDER BY c.name;
`, studentID)
	if err != nil {
		return nil, fmt.Errorf("ListForStudent: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (s *CourseStore) ListEnrolledStudents(ctx context.Context, courseID string) ([]store.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT st.student_id, u.name, u.email, st.device_fingerprint, st.face_descriptor
FROM enrollments e
JOIN students st ON st.student_id = e.student_id
JOIN users u ON u.user_id = st.student_id
WHERE e.course_id = ?
ORDER BY u.name;
`, courseID)
	if err != nil {
		return nil, fmt.Errorf("ListEnrolledStudents: %w", err)
	}
	defer rows.Close()

	var out []store.Student
	for rows.Next() {
		var (
			st          store.Student
			fingerprint sql.NullString
			descriptor  sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &fingerprint, &descriptor); err != nil {
			return nil, fmt.Errorf("ListEnrolledStudents scan: %w", err)
		}
		if fingerprint.Valid {
			st.DeviceFingerprint = fingerprint.String
		}
		if descriptor.Valid && descriptor.String != "" {
			if err := json.Unmarshal([]byte(descriptor.String), &st.FaceDescriptor); err != nil {
				return nil, fmt.Errorf("ListEnrolledStudents descriptor decode: %w", err)
			}
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *CourseStore) CountEnrolled(ctx context.Context, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM enrollments WHERE course_id = ?;
`, courseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountEnrolled: %w", err)
	}
	return n, nil
}

func scanCourses(rows *sql.Rows) ([]store.Course, error) {
	var out []store.Course
	for rows.Next() {
		var c store.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.FacultyID); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
