package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/proximark/server/internal/db"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production.  The connection is closed automatically when
// the test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each call gets a unique in-memory database.  The shared-cache URI
	// keeps the database alive for the lifetime of the connection pool.
	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}

	// Match production: single connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Worker backed by conn, closed automatically
// when the test finishes.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Worker {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return w
}

// seedFixtures inserts the users/profiles/course rows the foreign keys
// need: faculty fac-1, students stu-1 and stu-2 (enrolled), course crs-1.
func seedFixtures(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()

	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("seedFixtures: %v", err)
		}
	}

	exec(`INSERT INTO users(user_id, name, email, password_hash, role, created_at_ms, updated_at_ms)
VALUES ('fac-1', 'Dr. Mehta', 'mehta@x', 'hash', 'FACULTY', 0, 0),
       ('stu-1', 'Asha', 'asha@x', 'hash', 'STUDENT', 0, 0),
       ('stu-2', 'Vikram', 'vikram@x', 'hash', 'STUDENT', 0, 0);`)
	exec(`INSERT INTO faculty(faculty_id, department, created_at_ms, updated_at_ms)
VALUES ('fac-1', 'CS', 0, 0);`)
	exec(`INSERT INTO students(student_id, created_at_ms, updated_at_ms)
VALUES ('stu-1', 0, 0), ('stu-2', 0, 0);`)
	exec(`INSERT INTO courses(course_id, name, faculty_id, created_at_ms, updated_at_ms)
VALUES ('crs-1', 'Distributed Systems', 'fac-1', 0, 0);`)
	exec(`INSERT INTO enrollments(student_id, course_id, created_at_ms)
VALUES ('stu-1', 'crs-1', 0), ('stu-2', 'crs-1', 0);`)
}
