package member_test

import (
	"errors"
	"testing"

	"github.com/golang-sql/civil"

	"powerpump/internal/domain/member"
)

func validMember() member.Member {
	return member.Member{
		ID:             "123",
		GymID:          "PP10001",
		Name:           "John Smith",
		Phone:          "555-0101",
		Email:          "john@email.com",
		MembershipType: member.TypePremium,
		StartDate:      civil.Date{Year: 2024, Month: 1, Day: 1},
		EndDate:        civil.Date{Year: 2025, Month: 1, Day: 1},
		Status:         member.StatusActive,
	}
}

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *member.Member)
		wantErr bool
	}{
		{"valid member", func(m *member.Member) {}, false},
		{"valid without email", func(m *member.Member) { m.Email = "" }, false},
		{"suspended member", func(m *member.Member) { m.Status = member.StatusSuspended }, false},
		{"empty name", func(m *member.Member) { m.Name = "" }, true},
		{"whitespace name", func(m *member.Member) { m.Name = "   " }, true},
		{"invalid email", func(m *member.Member) { m.Email = "not-an-email" }, true},
		{"invalid tier", func(m *member.Member) { m.MembershipType = "platinum" }, true},
		{"invalid status", func(m *member.Member) { m.Status = "archived" }, true},
		{"missing start date", func(m *member.Member) { m.StartDate = civil.Date{} }, true},
		{"end before start", func(m *member.Member) { m.EndDate = civil.Date{Year: 2023, Month: 12, Day: 31} }, true},
		{"same start and end", func(m *member.Member) { m.EndDate = m.StartDate }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMember()
			tt.mutate(&m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Member.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, member.ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

// TestMemberIsActive tests the IsActive method on Member.
func TestMemberIsActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{member.StatusActive, true},
		{member.StatusExpired, false},
		{member.StatusSuspended, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			m := member.Member{Status: tt.status}
			if got := m.IsActive(); got != tt.want {
				t.Errorf("Member.IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMemberApply verifies partial updates leave untouched fields alone.
func TestMemberApply(t *testing.T) {
	m := validMember()
	status := member.StatusSuspended
	phone := "555-9999"
	m.Apply(member.Patch{Status: &status, Phone: &phone})

	if m.Status != member.StatusSuspended {
		t.Errorf("status = %q, want %q", m.Status, member.StatusSuspended)
	}
	if m.Phone != phone {
		t.Errorf("phone = %q, want %q", m.Phone, phone)
	}
	if m.Name != "John Smith" || m.GymID != "PP10001" || m.ID != "123" {
		t.Errorf("unexpected change to untouched fields: %+v", m)
	}
}

func TestFindByGymID(t *testing.T) {
	members := []member.Member{
		{ID: "a", GymID: "PP10001"},
		{ID: "b", GymID: "PP20002"},
		{ID: "c", GymID: "PP20002"},
	}

	got, ok := member.FindByGymID(members, "PP20002")
	if !ok || got.ID != "b" {
		t.Errorf("FindByGymID = (%v, %v), want first match b", got.ID, ok)
	}
	if _, ok := member.FindByGymID(members, "PP99999"); ok {
		t.Error("expected no match for PP99999")
	}
	if i := member.IndexOf(members, "c"); i != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", i)
	}
	if i := member.IndexOf(members, "zzz"); i != -1 {
		t.Errorf("IndexOf(zzz) = %d, want -1", i)
	}
}

func TestGenerateGymID(t *testing.T) {
	for i := 0; i < 500; i++ {
		id := member.GenerateGymID()
		if !member.IsGymIDFormat(id) {
			t.Fatalf("generated %q does not match PP + 5 digits", id)
		}
	}
}

func TestIsGymIDFormat(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"PP10000", true},
		{"PP99999", true},
		{"PP09999", false},
		{"PP1234", false},
		{"PP123456", false},
		{"XX12345", false},
		{"PP12a45", false},
	}
	for _, tt := range tests {
		if got := member.IsGymIDFormat(tt.in); got != tt.want {
			t.Errorf("IsGymIDFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeGymID(t *testing.T) {
	if got := member.NormalizeGymID("  pp10001 "); got != "PP10001" {
		t.Errorf("NormalizeGymID = %q, want PP10001", got)
	}
}
