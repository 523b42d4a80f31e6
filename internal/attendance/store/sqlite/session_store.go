package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/proximark/server/internal/attendance/store"
	dbpkg "github.com/proximark/server/internal/db"
)

type SessionStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewSessionStore(db *sql.DB, writer *dbpkg.Worker) *SessionStore {
	return &SessionStore{db: db, writer: writer}
}

// CreateActive checks for an active session and inserts inside one write
// transaction.  All writes are serialized through the worker, so two racing
// starts for the same course resolve deterministically: one row, one
// ErrSessionActive.  The partial unique index on (course_id) WHERE active=1
// backs the same invariant at the schema level.
func (s *SessionStore) CreateActive(ctx context.Context, sess store.Session) error {
	startedMs := sess.StartedAt.UTC().UnixMilli()

	var lat, lng any
	if sess.FacultyLat != nil {
		lat = *sess.FacultyLat
	}
	if sess.FacultyLng != nil {
		lng = *sess.FacultyLng
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var existing string
		err := tx.QueryRowContext(ctx, `
SELECT session_id FROM attendance_sessions
WHERE course_id = ? AND active = 1;
`, sess.CourseID).Scan(&existing)
		if err == nil {
			return store.ErrSessionActive
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("CreateActive check: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO attendance_sessions(
  session_id, course_id, faculty_id, mode,
  started_at_ms, faculty_lat, faculty_lng, active
) VALUES (?, ?, ?, ?, ?, ?, ?, 1);
`, sess.ID, sess.CourseID, sess.FacultyID, sess.Mode, startedMs, lat, lng); err != nil {
			return fmt.Errorf("CreateActive insert: %w", err)
		}

		return nil
	})
}

func (s *SessionStore) Stop(ctx context.Context, sessionID string, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	endedMs := at.UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var active int
		err := tx.QueryRowContext(ctx, `
SELECT active FROM attendance_sessions WHERE session_id = ?;
`, sessionID).Scan(&active)
		if err == sql.ErrNoRows {
			return store.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("Stop check: %w", err)
		}
		if active == 0 {
			// Already stopped — idempotent no-op.
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE attendance_sessions
SET active = 0, ended_at_ms = ?
WHERE session_id = ?;
`, endedMs, sessionID); err != nil {
			return fmt.Errorf("Stop update: %w", err)
		}

		return nil
	})
}

func (s *SessionStore) GetByID(ctx context.Context, sessionID string) (store.Session, error) {
	row := s.db.QueryRowContext(ctx, sessionQuery+`WHERE session_id = ?;`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return store.Session{}, store.ErrSessionNotFound
	}
	if err != nil {
		return store.Session{}, fmt.Errorf("GetByID: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) ActiveByCourse(ctx context.Context, courseID string) (*store.Session, error) {
	row := s.db.QueryRowContext(ctx, sessionQuery+`WHERE course_id = ? AND active = 1;`, courseID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ActiveByCourse: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) ListByCourse(ctx context.Context, courseID string) ([]store.Session, error) {
	rows, err := s.db.QueryContext(ctx, sessionQuery+`WHERE course_id = ? ORDER BY started_at_ms DESC;`, courseID)
	if err != nil {
		return nil, fmt.Errorf("ListByCourse: %w", err)
	}
	defer rows.Close()

	var out []store.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByCourse scan: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

const sessionQuery = `
SELECT session_id, course_id, faculty_id, mode,
       started_at_ms, ended_at_ms, faculty_lat, faculty_lng, active
FROM attendance_sessions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (store.Session, error) {
	var (
		sess      store.Session
		startedMs int64
		endedMs   sql.NullInt64
		lat, lng  sql.NullFloat64
		active    int
	)
	err := r.Scan(&sess.ID, &sess.CourseID, &sess.FacultyID, &sess.Mode,
		&startedMs, &endedMs, &lat, &lng, &active)
	if err != nil {
		return store.Session{}, err
	}

	sess.StartedAt = time.UnixMilli(startedMs).UTC()
	if endedMs.Valid {
		t := time.UnixMilli(endedMs.Int64).UTC()
		sess.EndedAt = &t
	}
	if lat.Valid {
		v := lat.Float64
		sess.FacultyLat = &v
	}
	if lng.Valid {
		v := lng.Float64
		sess.FacultyLng = &v
	}
	sess.Active = active == 1
	return sess, nil
}
