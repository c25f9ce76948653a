package storage

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// Collection names.
const (
	CollectionMembers    = "members"
	CollectionAttendance = "attendance"
)

// Backend stores each named collection as one opaque document.
// Put replaces the whole document; readers never observe a partial write.
type Backend interface {
	Get(ctx context.Context, name string) (body []byte, found bool, err error)
	Put(ctx context.Context, name string, body []byte) error
}

// HealthChecker is implemented by backends that can report connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// LoadCollection decodes the named collection as a JSON array.
// PRE: b is non-nil
// POST: Returns an empty, non-nil slice when nothing has been stored yet
func LoadCollection[T any](ctx context.Context, b Backend, name string) ([]T, error) {
	body, found, err := b.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if !found || len(body) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveCollection encodes records as a JSON array and replaces the named collection.
// PRE: b is non-nil
// POST: A later LoadCollection returns records in the same order
func SaveCollection[T any](ctx context.Context, b Backend, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := b.Put(ctx, name, body); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
