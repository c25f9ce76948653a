package storage

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"powerpump/internal/adapters/metrics"
)

func newTimedTestDB(t *testing.T) (*TimedDB, *prometheus.Registry) {
	t.Helper()
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	reg := prometheus.NewRegistry()
	return NewTimedDB(db, metrics.New(reg), time.Second), reg
}

// TestTimedDB_RecordsQueries verifies each call lands in the storage histogram.
func TestTimedDB_RecordsQueries(t *testing.T) {
	tdb, reg := newTimedTestDB(t)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if val != "hello" {
		t.Errorf("val = %q, want hello", val)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	rows.Close()

	n, err := testutil.GatherAndCount(reg, "powerpump_storage_duration_seconds")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 3 {
		t.Errorf("storage series = %d, want 3 (one per op)", n)
	}
}

// TestTimedDB_NilRecorder verifies the wrapper works without metrics.
func TestTimedDB_NilRecorder(t *testing.T) {
	db := openTestDB(t)
	tdb := NewTimedDB(db, nil, 0)
	if tdb.threshold != DefaultSlowQuery {
		t.Errorf("threshold = %v, want default %v", tdb.threshold, DefaultSlowQuery)
	}

	tx, err := tdb.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if tdb.RawDB() != db {
		t.Error("RawDB should return the wrapped connection")
	}
}
