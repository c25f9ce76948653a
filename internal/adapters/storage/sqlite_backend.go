package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLiteBackend keeps one row per collection in the collection table.
type SQLiteBackend struct {
	db  SQLDB
	now func() time.Time
}

// NewSQLiteBackend creates a Backend over db.
// PRE: InitDB has been run on the underlying database
func NewSQLiteBackend(db SQLDB) *SQLiteBackend {
	return &SQLiteBackend{db: db, now: time.Now}
}

// Get returns the stored document for name.
// PRE: name is non-empty
// POST: found is false when the collection has never been written
func (s *SQLiteBackend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM collection WHERE name = ?", name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(body), true, nil
}

// Put upserts the document for name inside a transaction.
// PRE: name is non-empty
// POST: The row for name holds body
func (s *SQLiteBackend) Put(ctx context.Context, name string, body []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO collection (name, body, updated_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(name) DO UPDATE SET body=excluded.body, updated_at=excluded.updated_at"
	if _, err := tx.ExecContext(ctx, query, name, string(body), s.now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}

// Ping checks that the database answers.
func (s *SQLiteBackend) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}
