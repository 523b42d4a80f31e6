package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proximark/server/internal/attendance/store"
	"github.com/proximark/server/internal/attendance/types"
)

var ErrEmptyDescriptor = errors.New("face_descriptor is required")

// VerifyService is the attendance verification engine: an ordered gate
// chain evaluated once per submission, statelessly, against the persisted
// stores.  Cheap absolute checks run first, the biometric check last, and
// the first failing gate short-circuits with a reason code.
type VerifyService struct {
	sessions store.SessionStore
	students store.StudentStore
	ledger   store.AttendanceStore
	binding  *DeviceBinding
}

func NewVerifyService(
	sessions store.SessionStore,
	students store.StudentStore,
	ledger store.AttendanceStore,
	binding *DeviceBinding,
) *VerifyService {
	return &VerifyService{sessions: sessions, students: students, ledger: ledger, binding: binding}
}

// Apply runs one submission through the gate chain.  Rejections come back
// as responses with Marked=false and a reason code; a returned error means
// an infrastructure fault, never a verdict.
//
// The device-binding gate commits its first-bind mutation even when a later
// gate rejects the submission: the binding records whose device this is, a
// fact independent of any single attempt's success.
func (s *VerifyService) Apply(ctx context.Context, studentID string, req types.VerifyRequest) (types.VerifyResponse, error) {
	now := time.Now().UTC()

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return types.VerifyResponse{}, ErrInvalidSessionID
	}

	reject := func(reason, message string) types.VerifyResponse {
		return types.VerifyResponse{
			OK:         true,
			Marked:     false,
			Reason:     reason,
			Message:    message,
			SessionID:  sessionID,
			ServerTime: now.Format(time.RFC3339Nano),
		}
	}

	// Gate 1: client environment risk flags.  Advisory signals, but
	// sufficient alone to deny.
	if req.VPNDetected || req.DevModeDetected {
		return reject(types.ReasonSecurityAlert,
			"security alert: VPN or developer mode detected"), nil
	}

	// Gate 2: the session must exist and be active.
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return reject(types.ReasonSessionNotActive, "session is not active"), nil
	}
	if err != nil {
		return types.VerifyResponse{}, err
	}
	if !sess.Active {
		return reject(types.ReasonSessionNotActive, "session is not active"), nil
	}

	// Gate 3: exactly-once pre-check.  Runs before the device and location
	// gates so retry storms cannot re-bind a device or probe distances.
	exists, err := s.ledger.Exists(ctx, sessionID, studentID)
	if err != nil {
		return types.VerifyResponse{}, err
	}
	if exists {
		return reject(types.ReasonAlreadyMarked,
			"attendance already marked for this session"), nil
	}

	// Gate 4: device binding.  The first-bind write persists regardless of
	// the gates below.
	outcome, err := s.binding.BindOrVerify(ctx, studentID, req.DeviceFingerprint)
	if err != nil {
		return types.VerifyResponse{}, err
	}
	switch outcome {
	case BindInvalid:
		return reject(types.ReasonInvalidFingerprint, "invalid device fingerprint"), nil
	case BindMismatch:
		return reject(types.ReasonDeviceMismatch,
			"device mismatch: you can only use the device you registered with"), nil
	}

	// Gate 5: a coordinate is mandatory.
	if req.Lat == nil || req.Lng == nil {
		return reject(types.ReasonLocationRequired, "location is required for attendance"), nil
	}

	// Gate 6: geofence, only when the session carries a faculty coordinate.
	// Sessions without one are location-exempt.
	if sess.HasFacultyLocation() {
		dist := DistanceMeters(*sess.FacultyLat, *sess.FacultyLng, *req.Lat, *req.Lng)
		if dist > geofenceRadiusMeters {
			return reject(types.ReasonLocationTooFar, fmt.Sprintf(
				"too far from the classroom: %dm (max %dm)",
				int(math.Round(dist)), int(geofenceRadiusMeters))), nil
		}
	}

	// Gate 7: biometric match, FACE-mode sessions only.
	if sess.Mode == store.ModeFace {
		if len(req.FaceDescriptor) == 0 {
			return reject(types.ReasonFaceDataRequired,
				"face data required for this session"), nil
		}

		student, err := s.students.GetByID(ctx, studentID)
		if err != nil {
			return types.VerifyResponse{}, err
		}
		if !student.HasFaceDescriptor() {
			return reject(types.ReasonFaceNotRegistered,
				"face not registered: please register first"), nil
		}
		if DescriptorDistance(req.FaceDescriptor, student.FaceDescriptor) > faceMatchThreshold {
			return reject(types.ReasonFaceMismatch, "face verification failed"), nil
		}
	}

	// Gate 8: commit.  The conditional insert is the authoritative
	// exactly-once gate; losing the race against a concurrent duplicate
	// resolves to the same rejection as gate 3.
	created, err := s.ledger.CreateIfAbsent(ctx, store.AttendanceRecord{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		StudentID:         studentID,
		Lat:               *req.Lat,
		Lng:               *req.Lng,
		DeviceFingerprint: strings.TrimSpace(req.DeviceFingerprint),
		Status:            store.StatusPresent,
		MarkedAt:          now,
	})
	if err != nil {
		return types.VerifyResponse{}, err
	}
	if !created {
		return reject(types.ReasonAlreadyMarked,
			"attendance already marked for this session"), nil
	}

	return types.VerifyResponse{
		OK:         true,
		Marked:     true,
		Reason:     types.ReasonPresent,
		Message:    "attendance marked successfully",
		SessionID:  sessionID,
		ServerTime: now.Format(time.RFC3339Nano),
	}, nil
}

// RegisterFace replaces the student's stored descriptor unconditionally.
// Liveness is the capturing client's responsibility; no match check runs
// at registration time.
func (s *VerifyService) RegisterFace(ctx context.Context, studentID string, descriptor []float64) error {
	if len(descriptor) == 0 {
		return ErrEmptyDescriptor
	}
	return s.students.SetFaceDescriptor(ctx, studentID, descriptor)
}
