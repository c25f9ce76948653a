package member

import (
	"context"

	domain "powerpump/internal/domain/member"
)

// Store persists the members collection as a whole.
type Store interface {
	Load(ctx context.Context) ([]domain.Member, error)
	Save(ctx context.Context, members []domain.Member) error
}
