package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/proximark/server/internal/attendance/store"
	sqlitestore "github.com/proximark/server/internal/attendance/store/sqlite"
)

const testFingerprint = "fp-aabbccdd-11223344"

func TestStudentStore_GetByID_FreshStudent(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewStudentStore(conn, w)

	st, err := ss.GetByID(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if st.Name != "Asha" {
		t.Errorf("expected name from users row, got %q", st.Name)
	}
	if st.DeviceFingerprint != "" {
		t.Errorf("expected no fingerprint, got %q", st.DeviceFingerprint)
	}
	if st.HasFaceDescriptor() {
		t.Error("expected no descriptor")
	}
}

func TestStudentStore_GetByID_Unknown(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewStudentStore(conn, w)

	_, err := ss.GetByID(context.Background(), "no-such-student")
	if !errors.Is(err, store.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentStore_BindDeviceIfUnset_WriteOnce(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewStudentStore(conn, w)
	ctx := context.Background()

	bound, err := ss.BindDeviceIfUnset(ctx, "stu-1", testFingerprint)
	if err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if bound != testFingerprint {
		t.Fatalf("expected candidate to win the first bind, got %q", bound)
	}

	// A later candidate cannot replace the binding.
	bound, err = ss.BindDeviceIfUnset(ctx, "stu-1", "fp-other-device-9999")
	if err != nil {
		t.Fatalf("second bind: %v", err)
	}
	if bound != testFingerprint {
		t.Errorf("expected original fingerprint preserved, got %q", bound)
	}

	st, err := ss.GetByID(ctx, "stu-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if st.DeviceFingerprint != testFingerprint {
		t.Errorf("expected persisted fingerprint %q, got %q", testFingerprint, st.DeviceFingerprint)
	}
}

func TestStudentStore_BindDeviceIfUnset_Unknown(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewStudentStore(conn, w)

	_, err := ss.BindDeviceIfUnset(context.Background(), "no-such-student", testFingerprint)
	if !errors.Is(err, store.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentStore_SetFaceDescriptor_RoundTrip(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewStudentStore(conn, w)
	ctx := context.Background()

	d := make([]float64, 128)
	d[0] = 0.25
	d[127] = -0.5

	if err := ss.SetFaceDescriptor(ctx, "stu-1", d); err != nil {
		t.Fatalf("SetFaceDescriptor: %v", err)
	}

	st, err := ss.GetByID(ctx, "stu-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(st.FaceDescriptor) != 128 {
		t.Fatalf("expected 128-dim descriptor, got %d", len(st.FaceDescriptor))
	}
	if st.FaceDescriptor[0] != 0.25 || st.FaceDescriptor[127] != -0.5 {
		t.Error("descriptor values not preserved")
	}

	// Registration replaces unconditionally.
	d2 := make([]float64, 128)
	d2[5] = 1.0
	if err := ss.SetFaceDescriptor(ctx, "stu-1", d2); err != nil {
		t.Fatalf("replace descriptor: %v", err)
	}
	st, _ = ss.GetByID(ctx, "stu-1")
	if st.FaceDescriptor[0] != 0 || st.FaceDescriptor[5] != 1.0 {
		t.Error("expected descriptor replaced")
	}
}
