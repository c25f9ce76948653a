package attendance

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	_ "modernc.org/sqlite"

	"powerpump/internal/adapters/storage"
	domain "powerpump/internal/domain/attendance"
)

func sqliteBackend(t *testing.T) storage.Backend {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return storage.NewSQLiteBackend(db)
}

// TestCollectionStore_SQLiteRoundTrip stores an open and a closed record through SQLite.
func TestCollectionStore_SQLiteRoundTrip(t *testing.T) {
	backend := sqliteBackend(t)
	store := NewCollectionStore(backend)
	ctx := context.Background()

	in := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	out := in.Add(75 * time.Minute)
	day := civil.Date{Year: 2026, Month: 3, Day: 14}
	want := []domain.Record{
		{ID: "r1", MemberID: "m1", GymID: "PP10001", MemberName: "John Smith", Date: day, ClockIn: in, ClockOut: &out},
		{ID: "r2", MemberID: "m2", GymID: "PP10002", MemberName: "Sarah Johnson", Date: day, ClockIn: in.Add(time.Hour)},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ClockOut == nil || !got[0].ClockOut.Equal(out) {
		t.Errorf("closed record clock-out = %v, want %v", got[0].ClockOut, out)
	}
	if got[1].ClockOut != nil {
		t.Errorf("open record clock-out = %v, want nil", got[1].ClockOut)
	}
	if got[1].Date != day || got[1].MemberName != "Sarah Johnson" {
		t.Errorf("unexpected second record: %+v", got[1])
	}

	body, _, _ := backend.Get(ctx, storage.CollectionAttendance)
	for _, want := range []string{`"clockOut":null`, `"date":"2026-03-14"`, `"uniqueGymId":"PP10001"`, `"userName":"Sarah Johnson"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("stored body %s missing %s", body, want)
		}
	}
}

func TestCollectionStore_RejectsBadDate(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()
	backend.Put(ctx, storage.CollectionAttendance, []byte(`[{"id":"r1","date":""}]`))

	if _, err := NewCollectionStore(backend).Load(ctx); err == nil {
		t.Error("expected error for record without date")
	}
}
