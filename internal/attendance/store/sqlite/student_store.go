package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/proximark/server/internal/attendance/store"
	dbpkg "github.com/proximark/server/internal/db"
)

type StudentStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewStudentStore(db *sql.DB, writer *dbpkg.Worker) *StudentStore {
	return &StudentStore{db: db, writer: writer}
}

func (s *StudentStore) GetByID(ctx context.Context, studentID string) (store.Student, error) {
	var (
		st          store.Student
		fingerprint sql.NullString
		descriptor  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT s.student_id, u.name, u.email, s.device_fingerprint, s.face_descriptor
FROM students s
JOIN users u ON u.user_id = s.student_id
WHERE s.student_id = ?;
`, studentID).Scan(&st.ID, &st.Name, &st.Email, &fingerprint, &descriptor)
	if err == sql.ErrNoRows {
		return store.Student{}, store.ErrStudentNotFound
	}
	if err != nil {
		return store.Student{}, fmt.Errorf("GetByID: %w", err)
	}

	if fingerprint.Valid {
		st.DeviceFingerprint = fingerprint.String
	}
	if descriptor.Valid && descriptor.String != "" {
		if err := json.Unmarshal([]byte(descriptor.String), &st.FaceDescriptor); err != nil {
			return store.Student{}, fmt.Errorf("GetByID descriptor decode: %w", err)
		}
	}
	return st, nil
}

// BindDeviceIfUnset performs the write-once bind as a single guarded
// transaction: read the current value, write only when empty.  The
// serialized writer guarantees two racing first-binds cannot both see the
// unset state.
func (s *StudentStore) BindDeviceIfUnset(ctx context.Context, studentID, fingerprint string) (string, error) {
	var bound string

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var cur sql.NullString
		err := tx.QueryRowContext(ctx, `
SELECT device_fingerprint FROM students WHERE student_id = ?;
`, studentID).Scan(&cur)
		if err == sql.ErrNoRows {
			return store.ErrStudentNotFound
		}
		if err != nil {
			return fmt.Errorf("BindDeviceIfUnset check: %w", err)
		}

		if cur.Valid && cur.String != "" {
			bound = cur.String
			return nil
		}

		nowMs := time.Now().UTC().UnixMilli()
		if _, err := tx.ExecContext(ctx, `
UPDATE students
SET device_fingerprint = ?, updated_at_ms = ?
WHERE student_id = ?;
`, fingerprint, nowMs, studentID); err != nil {
			return fmt.Errorf("BindDeviceIfUnset update: %w", err)
		}

		bound = fingerprint
		return nil
	})
	if err != nil {
		return "", err
	}
	return bound, nil
}

func (s *StudentStore) SetFaceDescriptor(ctx context.Context, studentID string, descriptor []float64) error {
	encoded, err := json.Marshal(descriptor)
	if err != nil {
		return fmt.Errorf("SetFaceDescriptor encode: %w", err)
	}
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE students
SET face_descriptor = ?, updated_at_ms = ?
WHERE student_id = ?;
`, string(encoded), nowMs, studentID)
		if err != nil {
			return fmt.Errorf("SetFaceDescriptor update: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return store.ErrStudentNotFound
		}
		return nil
	})
}
