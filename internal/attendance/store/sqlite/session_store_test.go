package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/proximark/server/internal/attendance/store"
	sqlitestore "github.com/proximark/server/internal/attendance/store/sqlite"
)

func testSession(id string) store.Session {
	lat, lng := 12.0, 77.0
	return store.Session{
		ID:         id,
		CourseID:   "crs-1",
		FacultyID:  "fac-1",
		Mode:       store.ModeSimple,
		StartedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		FacultyLat: &lat,
		FacultyLng: &lng,
		Active:     true,
	}
}

func TestSessionStore_CreateActive_RoundTrip(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)
	ctx := context.Background()

	if err := ss.CreateActive(ctx, testSession("sess-1")); err != nil {
		t.Fatalf("CreateActive: %v", err)
	}

	got, err := ss.GetByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Active {
		t.Error("expected active=true")
	}
	if got.EndedAt != nil {
		t.Error("expected no end time")
	}
	if got.Mode != store.ModeSimple {
		t.Errorf("expected mode SIMPLE, got %q", got.Mode)
	}
	if got.FacultyLat == nil || *got.FacultyLat != 12.0 {
		t.Errorf("expected faculty_lat=12, got %v", got.FacultyLat)
	}
	if !got.StartedAt.Equal(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start time %v", got.StartedAt)
	}
}

func TestSessionStore_CreateActive_SecondActive_Conflict(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)
	ctx := context.Background()

	if err := ss.CreateActive(ctx, testSession("sess-1")); err != nil {
		t.Fatalf("first CreateActive: %v", err)
	}

	err := ss.CreateActive(ctx, testSession("sess-2"))
	if !errors.Is(err, store.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}

func TestSessionStore_StopThenCreate_Allowed(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)
	ctx := context.Background()

	if err := ss.CreateActive(ctx, testSession("sess-1")); err != nil {
		t.Fatalf("CreateActive: %v", err)
	}

	endAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	if err := ss.Stop(ctx, "sess-1", endAt); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	got, err := ss.GetByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Active {
		t.Error("expected active=false")
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(endAt) {
		t.Errorf("expected end time %v, got %v", endAt, got.EndedAt)
	}

	// Stopping again is a no-op and keeps the original end time.
	if err := ss.Stop(ctx, "sess-1", endAt.Add(time.Hour)); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	got, _ = ss.GetByID(ctx, "sess-1")
	if !got.EndedAt.Equal(endAt) {
		t.Errorf("expected end time unchanged at %v, got %v", endAt, got.EndedAt)
	}

	if err := ss.CreateActive(ctx, testSession("sess-2")); err != nil {
		t.Fatalf("CreateActive after stop: %v", err)
	}
}

func TestSessionStore_Stop_Unknown_NotFound(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)

	err := ss.Stop(context.Background(), "no-such-session", time.Now().UTC())
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_ActiveByCourse(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)
	ctx := context.Background()

	active, err := ss.ActiveByCourse(ctx, "crs-1")
	if err != nil {
		t.Fatalf("ActiveByCourse: %v", err)
	}
	if active != nil {
		t.Fatal("expected nil before any session")
	}

	if err := ss.CreateActive(ctx, testSession("sess-1")); err != nil {
		t.Fatalf("CreateActive: %v", err)
	}

	active, err = ss.ActiveByCourse(ctx, "crs-1")
	if err != nil {
		t.Fatalf("ActiveByCourse: %v", err)
	}
	if active == nil || active.ID != "sess-1" {
		t.Fatalf("expected sess-1, got %+v", active)
	}
}

func TestSessionStore_ListByCourse_NewestFirst(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedFixtures(t, conn)
	ss := sqlitestore.NewSessionStore(conn, w)
	ctx := context.Background()

	first := testSession("sess-1")
	if err := ss.CreateActive(ctx, first); err != nil {
		t.Fatalf("CreateActive: %v", err)
	}
	if err := ss.Stop(ctx, "sess-1", first.StartedAt.Add(time.Hour)); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	second := testSession("sess-2")
	second.StartedAt = first.StartedAt.Add(24 * time.Hour)
	if err := ss.CreateActive(ctx, second); err != nil {
		t.Fatalf("CreateActive: %v", err)
	}

	sessions, err := ss.ListByCourse(ctx, "crs-1")
	if err != nil {
		t.Fatalf("ListByCourse: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "sess-2" || sessions[1].ID != "sess-1" {
		t.Errorf("expected newest first, got %s then %s", sessions[0].ID, sessions[1].ID)
	}
}
