package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-sql/civil"

	"powerpump/internal/adapters/storage"
	domain "powerpump/internal/domain/attendance"
)

// record is the stored shape of an attendance entry.
// ClockOut is null while the session is open.
type record struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"userId"`
	GymID      string     `json:"uniqueGymId"`
	MemberName string     `json:"userName"`
	Date       string     `json:"date"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut"`
}

// CollectionStore implements Store on a storage.Backend.
type CollectionStore struct {
	backend storage.Backend
}

// NewCollectionStore creates a new attendance Store.
func NewCollectionStore(backend storage.Backend) *CollectionStore {
	return &CollectionStore{backend: backend}
}

// Load returns every stored record in stored order.
func (s *CollectionStore) Load(ctx context.Context) ([]domain.Record, error) {
	rows, err := storage.LoadCollection[record](ctx, s.backend, storage.CollectionAttendance)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		day, err := civil.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("attendance %s: %w", r.ID, err)
		}
		records = append(records, domain.Record{
			ID:         r.ID,
			MemberID:   r.MemberID,
			GymID:      r.GymID,
			MemberName: r.MemberName,
			Date:       day,
			ClockIn:    r.ClockIn,
			ClockOut:   r.ClockOut,
		})
	}
	return records, nil
}

// Save replaces the stored collection with records.
func (s *CollectionStore) Save(ctx context.Context, records []domain.Record) error {
	rows := make([]record, 0, len(records))
	for _, r := range records {
		rows = append(rows, record{
			ID:         r.ID,
			MemberID:   r.MemberID,
			GymID:      r.GymID,
			MemberName: r.MemberName,
			Date:       r.Date.String(),
			ClockIn:    r.ClockIn,
			ClockOut:   r.ClockOut,
		})
	}
	return storage.SaveCollection(ctx, s.backend, storage.CollectionAttendance, rows)
}
