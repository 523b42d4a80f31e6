package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/proximark/server/internal/attendance/store"
	dbpkg "github.com/proximark/server/internal/db"
)

type AttendanceStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAttendanceStore(db *sql.DB, writer *dbpkg.Worker) *AttendanceStore {
	return &AttendanceStore{db: db, writer: writer}
}

// CreateIfAbsent relies on the UNIQUE (session_id, student_id) index:
// INSERT OR IGNORE makes the duplicate check and the insert one storage
// primitive, so exactly one of N concurrent duplicates creates a row.
func (s *AttendanceStore) CreateIfAbsent(ctx context.Context, rec store.AttendanceRecord) (bool, error) {
	if rec.MarkedAt.IsZero() {
		rec.MarkedAt = time.Now().UTC()
	}
	markedMs := rec.MarkedAt.UTC().UnixMilli()

	var created bool
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO attendance_records(
  record_id, session_id, student_id, lat, lng,
  device_fingerprint, status, marked_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`, rec.ID, rec.SessionID, rec.StudentID, rec.Lat, rec.Lng,
			rec.DeviceFingerprint, rec.Status, markedMs)
		if err != nil {
			return fmt.Errorf("CreateIfAbsent insert: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("CreateIfAbsent rows affected: %w", err)
		}
		created = n == 1
		return nil
	})
	return created, err
}

func (s *AttendanceStore) Exists(ctx context.Context, sessionID, studentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
SELECT 1 FROM attendance_records
WHERE session_id = ? AND student_id = ?;
`, sessionID, studentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return true, nil
}

func (s *AttendanceStore) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM attendance_records WHERE session_id = ?;
`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountBySession: %w", err)
	}
	return n, nil
}

func (s *AttendanceStore) ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]store.AttendanceRecord, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(sessionIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT record_id, session_id, student_id, lat, lng,
       device_fingerprint, status, marked_at_ms
FROM attendance_records
WHERE session_id IN (`+placeholders+`);
`, args...)
	if err != nil {
		return nil, fmt.Errorf("ListBySessionIDs: %w", err)
	}
	defer rows.Close()

	var out []store.AttendanceRecord
	for rows.Next() {
		var (
			rec      store.AttendanceRecord
			markedMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.StudentID, &rec.Lat, &rec.Lng,
			&rec.DeviceFingerprint, &rec.Status, &markedMs); err != nil {
			return nil, fmt.Errorf("ListBySessionIDs scan: %w", err)
		}
		rec.MarkedAt = time.UnixMilli(markedMs).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
