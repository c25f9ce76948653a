package member

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-sql/civil"

	"powerpump/internal/adapters/storage"
	domain "powerpump/internal/domain/member"
)

// record is the stored shape of a member. Dates are ISO YYYY-MM-DD strings.
type record struct {
	ID             string    `json:"id"`
	GymID          string    `json:"uniqueGymId"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Email          string    `json:"email"`
	MembershipType string    `json:"membershipType"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CollectionStore implements Store on a storage.Backend.
type CollectionStore struct {
	backend storage.Backend
}

// NewCollectionStore creates a new member Store.
func NewCollectionStore(backend storage.Backend) *CollectionStore {
	return &CollectionStore{backend: backend}
}

// Load returns every stored member in stored order.
// POST: Returns an empty slice when nothing has been saved
func (s *CollectionStore) Load(ctx context.Context) ([]domain.Member, error) {
	rows, err := storage.LoadCollection[record](ctx, s.backend, storage.CollectionMembers)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(rows))
	for _, r := range rows {
		m, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", r.ID, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// Save replaces the stored collection with members.
func (s *CollectionStore) Save(ctx context.Context, members []domain.Member) error {
	rows := make([]record, 0, len(members))
	for _, m := range members {
		rows = append(rows, fromDomain(m))
	}
	return storage.SaveCollection(ctx, s.backend, storage.CollectionMembers, rows)
}

func fromDomain(m domain.Member) record {
	return record{
		ID:             m.ID,
		GymID:          m.GymID,
		Name:           m.Name,
		Phone:          m.Phone,
		Address:        m.Address,
		Email:          m.Email,
		MembershipType: m.MembershipType,
		StartDate:      formatDate(m.StartDate),
		EndDate:        formatDate(m.EndDate),
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}

func (r record) toDomain() (domain.Member, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return domain.Member{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return domain.Member{}, err
	}
	return domain.Member{
		ID:             r.ID,
		GymID:          r.GymID,
		Name:           r.Name,
		Phone:          r.Phone,
		Address:        r.Address,
		Email:          r.Email,
		MembershipType: r.MembershipType,
		StartDate:      start,
		EndDate:        end,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}, nil
}

func formatDate(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.String()
}

func parseDate(s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	return civil.ParseDate(s)
}
