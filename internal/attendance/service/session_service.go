package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proximark/server/internal/attendance/store"
	"github.com/proximark/server/internal/attendance/types"
)

var (
	ErrInvalidCourseID  = errors.New("course_id is required")
	ErrInvalidSessionID = errors.New("session_id is required")
	ErrInvalidMode      = errors.New("mode must be FACE or SIMPLE")
)

// SessionService owns the session lifecycle: at most one active session per
// course, started and stopped by faculty actions.  Sessions never expire on
// their own.
type SessionService struct {
	sessions store.SessionStore
	courses  store.CourseStore
}

func NewSessionService(sessions store.SessionStore, courses store.CourseStore) *SessionService {
	return &SessionService{sessions: sessions, courses: courses}
}

// Start creates a new active session for the course.  Returns
// store.ErrSessionActive when the course already has one (the check and the
// create are atomic in the store) and store.ErrCourseNotFound for an
// unknown course.
func (s *SessionService) Start(ctx context.Context, facultyID string, req types.StartSessionRequest) (types.Session, error) {
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		return types.Session{}, ErrInvalidCourseID
	}
	mode := strings.ToUpper(strings.TrimSpace(req.Mode))
	if mode != store.ModeFace && mode != store.ModeSimple {
		return types.Session{}, ErrInvalidMode
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return types.Session{}, err
	}

	sess := store.Session{
		ID:         uuid.NewString(),
		CourseID:   courseID,
		FacultyID:  facultyID,
		Mode:       mode,
		StartedAt:  time.Now().UTC(),
		FacultyLat: req.Lat,
		FacultyLng: req.Lng,
		Active:     true,
	}

	if err := s.sessions.CreateActive(ctx, sess); err != nil {
		return types.Session{}, err
	}
	return SessionToWire(sess), nil
}

// Stop deactivates the session.  Unknown ids are store.ErrSessionNotFound;
// stopping an already-stopped session is a no-op.
func (s *SessionService) Stop(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	return s.sessions.Stop(ctx, sessionID, time.Now().UTC())
}

func (s *SessionService) ActiveByCourse(ctx context.Context, courseID string) (*types.Session, error) {
	sess, err := s.sessions.ActiveByCourse(ctx, courseID)
	if err != nil || sess == nil {
		return nil, err
	}
	wire := SessionToWire(*sess)
	return &wire, nil
}

func SessionToWire(sess store.Session) types.Session {
	wire := types.Session{
		ID:        sess.ID,
		CourseID:  sess.CourseID,
		Mode:      sess.Mode,
		StartedAt: sess.StartedAt.UTC().Format(time.RFC3339Nano),
		Lat:       sess.FacultyLat,
		Lng:       sess.FacultyLng,
		Active:    sess.Active,
	}
	if sess.EndedAt != nil {
		wire.EndedAt = sess.EndedAt.UTC().Format(time.RFC3339Nano)
	}
	return wire
}
