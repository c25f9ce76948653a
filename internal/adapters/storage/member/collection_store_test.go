package member

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-sql/civil"

	"powerpump/internal/adapters/storage"
	domain "powerpump/internal/domain/member"
)

func TestCollectionStore_RoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := NewCollectionStore(backend)
	ctx := context.Background()

	created := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	want := []domain.Member{
		{
			ID:             "1",
			GymID:          "PP10001",
			Name:           "John Smith",
			Phone:          "555-0101",
			Email:          "john@email.com",
			MembershipType: domain.TypePremium,
			StartDate:      civil.Date{Year: 2024, Month: 1, Day: 1},
			EndDate:        civil.Date{Year: 2025, Month: 1, Day: 1},
			Status:         domain.StatusActive,
			CreatedAt:      created,
		},
		{ID: "2", GymID: "PP10002", Name: "No Dates", Status: domain.StatusExpired},
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
	if got[0].StartDate != want[0].StartDate || got[0].EndDate != want[0].EndDate {
		t.Errorf("dates = %s..%s, want %s..%s", got[0].StartDate, got[0].EndDate, want[0].StartDate, want[0].EndDate)
	}
	if !got[0].CreatedAt.Equal(created) || got[0].Name != "John Smith" || got[0].GymID != "PP10001" {
		t.Errorf("unexpected first member: %+v", got[0])
	}
	if got[1].StartDate.IsValid() {
		t.Errorf("empty date should load as zero, got %s", got[1].StartDate)
	}
}

// TestCollectionStore_WireFormat pins the stored JSON field names and date format.
func TestCollectionStore_WireFormat(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := NewCollectionStore(backend)
	ctx := context.Background()

	m := domain.Member{ID: "1", GymID: "PP10001", Name: "John", StartDate: civil.Date{Year: 2024, Month: 3, Day: 5}}
	if err := store.Save(ctx, []domain.Member{m}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	body, _, _ := backend.Get(ctx, storage.CollectionMembers)
	for _, want := range []string{`"uniqueGymId":"PP10001"`, `"startDate":"2024-03-05"`, `"membershipType"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("stored body %s missing %s", body, want)
		}
	}
}

func TestCollectionStore_EmptyAndCorrupt(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := NewCollectionStore(backend)
	ctx := context.Background()

	got, err := store.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("Load on empty backend = (%v, %v), want empty", got, err)
	}

	backend.Put(ctx, storage.CollectionMembers, []byte(`[{"id":"1","startDate":"not-a-date"}]`))
	if _, err := store.Load(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}
