package store

import "context"

// Student is the per-student security state consulted by the verification
// pipeline.  DeviceFingerprint is write-once: empty until the first
// accepted bind, fixed forever after (reset is an admin operation outside
// this engine).
type Student struct {
	ID                string
	Name              string
	Email             string
	DeviceFingerprint string    // "" until bound
	FaceDescriptor    []float64 // nil until registered
}

// HasFaceDescriptor reports whether the student completed face registration.
func (s Student) HasFaceDescriptor() bool {
	return len(s.FaceDescriptor) > 0
}

type StudentStore interface {
	GetByID(ctx context.Context, studentID string) (Student, error)

	// BindDeviceIfUnset sets the student's fingerprint if and only if none
	// is bound yet, and returns the fingerprint on record afterwards —
	// the candidate when this call won the first write, the pre-existing
	// value otherwise.  First-writer-wins under concurrency.
	BindDeviceIfUnset(ctx context.Context, studentID, fingerprint string) (string, error)

	// SetFaceDescriptor replaces the stored descriptor unconditionally.
	SetFaceDescriptor(ctx context.Context, studentID string, descriptor []float64) error
}
