package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SeedDev loads a minimal fixture set for local development: one faculty
// member, two students, one course with both students enrolled.  Idempotent
// via INSERT OR IGNORE on fixed ids.
func SeedDev(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	users := []struct {
		id, name, email, password, role string
	}{
		{"fac-001", "Dr. Mehta", "mehta@dev.local", "faculty123", "FACULTY"},
		{"stu-001", "Asha Rao", "asha@dev.local", "student123", "STUDENT"},
		{"stu-002", "Vikram Iyer", "vikram@dev.local", "student123", "STUDENT"},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %s: %w", u.email, err)
		}
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO users(user_id, name, email, password_hash, role, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
			u.id, u.name, u.email, string(hash), u.role, now, now); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO faculty(faculty_id, department, created_at_ms, updated_at_ms)
VALUES ('fac-001', 'Computer Science', ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed faculty: %w", err)
	}

	for _, id := range []string{"stu-001", "stu-002"} {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO students(student_id, created_at_ms, updated_at_ms)
VALUES (?, ?, ?);`, id, now, now); err != nil {
			return fmt.Errorf("seed student %s: %w", id, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO courses(course_id, name, faculty_id, created_at_ms, updated_at_ms)
VALUES ('crs-001', 'Distributed Systems', 'fac-001', ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	for _, id := range []string{"stu-001", "stu-002"} {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO enrollments(student_id, course_id, created_at_ms)
VALUES (?, 'crs-001', ?);`, id, now); err != nil {
			return fmt.Errorf("seed enrollment %s: %w", id, err)
		}
	}

	return nil
}
