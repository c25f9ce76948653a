package attendance

import (
	"context"

	domain "powerpump/internal/domain/attendance"
)

// Store persists the attendance collection as a whole.
type Store interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
}
