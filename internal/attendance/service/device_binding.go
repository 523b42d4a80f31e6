package service

import (
	"context"
	"strings"

	"github.com/proximark/server/internal/attendance/store"
)

// Fingerprints shorter than this are treated as coming from a malformed
// (untrustworthy) client.
const minFingerprintLength = 10

type BindOutcome int

const (
	// BindBound: the fingerprint is now the student's bound device —
	// either this call won the first write or it matched the existing
	// binding exactly.
	BindBound BindOutcome = iota
	// BindInvalid: missing or too-short fingerprint.
	BindInvalid
	// BindMismatch: a different device is already bound.  Permanent;
	// resetting a binding is an admin operation outside this engine.
	BindMismatch
)

// DeviceBinding enforces one physical device per student, forever.
type DeviceBinding struct {
	students store.StudentStore
}

func NewDeviceBinding(students store.StudentStore) *DeviceBinding {
	return &DeviceBinding{students: students}
}

// BindOrVerify validates the candidate fingerprint, binds it when the
// student has none (first-writer-wins), and otherwise compares byte for
// byte against the bound value.
func (b *DeviceBinding) BindOrVerify(ctx context.Context, studentID, fingerprint string) (BindOutcome, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if len(fingerprint) < minFingerprintLength {
		return BindInvalid, nil
	}

	bound, err := b.students.BindDeviceIfUnset(ctx, studentID, fingerprint)
	if err != nil {
		return BindInvalid, err
	}
	if bound != fingerprint {
		return BindMismatch, nil
	}
	return BindBound, nil
}
