package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/proximark/server/internal/attendance/service"
	"github.com/proximark/server/internal/attendance/store"
	"github.com/proximark/server/internal/attendance/store/memory"
)

func TestBindOrVerify_FirstBind_ThenExactMatch(t *testing.T) {
	students := memory.NewStudentStore(store.Student{ID: "stu-1"})
	b := service.NewDeviceBinding(students)

	outcome, err := b.BindOrVerify(context.Background(), "stu-1", validFingerprint)
	if err != nil {
		t.Fatalf("BindOrVerify: %v", err)
	}
	if outcome != service.BindBound {
		t.Fatalf("expected BindBound on first bind, got %v", outcome)
	}

	// Legitimate repeat use: same fingerprint, still bound.
	outcome, err = b.BindOrVerify(context.Background(), "stu-1", validFingerprint)
	if err != nil {
		t.Fatalf("BindOrVerify: %v", err)
	}
	if outcome != service.BindBound {
		t.Errorf("expected BindBound on repeat, got %v", outcome)
	}
}

func TestBindOrVerify_TooShort_Invalid(t *testing.T) {
	students := memory.NewStudentStore(store.Student{ID: "stu-1"})
	b := service.NewDeviceBinding(students)

	for _, fp := range []string{"", "   ", "123456789"} {
		outcome, err := b.BindOrVerify(context.Background(), "stu-1", fp)
		if err != nil {
			t.Fatalf("BindOrVerify(%q): %v", fp, err)
		}
		if outcome != service.BindInvalid {
			t.Errorf("fingerprint %q: expected BindInvalid, got %v", fp, outcome)
		}
	}
}

func TestBindOrVerify_DifferentDevice_Mismatch(t *testing.T) {
	students := memory.NewStudentStore(store.Student{ID: "stu-1", DeviceFingerprint: validFingerprint})
	b := service.NewDeviceBinding(students)

	outcome, err := b.BindOrVerify(context.Background(), "stu-1", "fp-other-device-9999")
	if err != nil {
		t.Fatalf("BindOrVerify: %v", err)
	}
	if outcome != service.BindMismatch {
		t.Errorf("expected BindMismatch, got %v", outcome)
	}
}

func TestBindOrVerify_ConcurrentFirstBinds_OneWinner(t *testing.T) {
	students := memory.NewStudentStore(store.Student{ID: "stu-1"})
	b := service.NewDeviceBinding(students)

	const n = 8
	var wg sync.WaitGroup
	outcomes := make([]service.BindOutcome, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fp := fmt.Sprintf("fp-device-%02d-racing", i)
			outcomes[i], _ = b.BindOrVerify(context.Background(), "stu-1", fp)
		}(i)
	}
	wg.Wait()

	bound, mismatched := 0, 0
	for _, o := range outcomes {
		switch o {
		case service.BindBound:
			bound++
		case service.BindMismatch:
			mismatched++
		}
	}

	if bound != 1 {
		t.Errorf("expected exactly 1 winning bind, got %d", bound)
	}
	if mismatched != n-1 {
		t.Errorf("expected %d mismatches, got %d", n-1, mismatched)
	}

	// The winner's fingerprint persisted; it never changes afterwards.
	st, err := students.GetByID(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if st.DeviceFingerprint == "" {
		t.Error("expected a persisted fingerprint")
	}
}
