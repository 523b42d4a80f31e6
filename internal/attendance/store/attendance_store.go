package store

import (
	"context"
	"time"
)

const StatusPresent = "PRESENT"

// AttendanceRecord is an immutable "student was verified present" fact.
// Only PRESENT records are persisted; rejections are reported to the
// caller, not stored.
type AttendanceRecord struct {
	ID                string
	SessionID         string
	StudentID         string
	Lat               float64
	Lng               float64
	DeviceFingerprint string
	Status            string
	MarkedAt          time.Time
}

type AttendanceStore interface {
	// CreateIfAbsent inserts the record unless one already exists for the
	// (session, student) pair.  The existence check and the insert are a
	// single atomic unit; exactly one of N concurrent duplicates is
	// created.  Returns false when the pair was already present.
	CreateIfAbsent(ctx context.Context, rec AttendanceRecord) (bool, error)

	Exists(ctx context.Context, sessionID, studentID string) (bool, error)

	CountBySession(ctx context.Context, sessionID string) (int, error)

	// ListBySessionIDs returns all records belonging to the given sessions.
	ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]AttendanceRecord, error)
}
