package store

import (
	"context"
	"time"
)

const (
	ModeFace   = "FACE"
	ModeSimple = "SIMPLE"
)

type Session struct {
	ID         string
	CourseID   string
	FacultyID  string
	Mode       string // ModeFace | ModeSimple
	StartedAt  time.Time
	EndedAt    *time.Time // nil while active
	FacultyLat *float64   // nil when the session is location-exempt
	FacultyLng *float64
	Active     bool
}

// HasFacultyLocation reports whether the session carries a coordinate to
// geofence against.
func (s Session) HasFacultyLocation() bool {
	return s.FacultyLat != nil && s.FacultyLng != nil
}

type SessionStore interface {
	// CreateActive inserts a new active session, failing with
	// ErrSessionActive when the course already has one.  The existence
	// check and the insert are a single atomic unit.
	CreateActive(ctx context.Context, s Session) error

	// Stop deactivates a session and stamps its end time.  Stopping an
	// already-stopped session is a no-op; an unknown id is
	// ErrSessionNotFound.
	Stop(ctx context.Context, sessionID string, at time.Time) error

	GetByID(ctx context.Context, sessionID string) (Session, error)

	// ActiveByCourse returns nil when the course has no active session.
	ActiveByCourse(ctx context.Context, courseID string) (*Session, error)

	// ListByCourse returns all sessions for a course, newest first.
	ListByCourse(ctx context.Context, courseID string) ([]Session, error)
}
