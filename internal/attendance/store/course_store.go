package store

import "context"

type Course struct {
	ID        string
	Name      string
	FacultyID string
}

type CourseStore interface {
	GetByID(ctx context.Context, courseID string) (Course, error)

	ListByFaculty(ctx context.Context, facultyID string) ([]Course, error)

	// ListForStudent returns the courses the student is enrolled in.
	ListForStudent(ctx context.Context, studentID string) ([]Course, error)

	ListEnrolledStudents(ctx context.Context, courseID string) ([]Student, error)

	CountEnrolled(ctx context.Context, courseID string) (int, error)
}
