package member

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-sql/civil"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Membership status values.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
)

// Membership tiers.
const (
	TypeBasic   = "basic"
	TypePremium = "premium"
	TypeElite   = "elite"
)

// Domain errors
var (
	ErrNotFound = errors.New("member not found")
	ErrInvalid  = errors.New("invalid member")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Member is a gym member record.
// ID is internal; GymID is the human-facing code typed at the kiosk.
type Member struct {
	ID             string
	GymID          string
	Name           string `validate:"required,max=100"`
	Phone          string `validate:"max=32"`
	Address        string `validate:"max=200"`
	Email          string `validate:"omitempty,email,max=254"`
	MembershipType string `validate:"oneof=basic premium elite"`
	StartDate      civil.Date
	EndDate        civil.Date
	Status         string `validate:"oneof=active expired suspended"`
	CreatedAt      time.Time
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name           *string
	Phone          *string
	Address        *string
	Email          *string
	MembershipType *string
	StartDate      *civil.Date
	EndDate        *civil.Date
	Status         *string
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns an error wrapping ErrInvalid if validation fails, nil otherwise
// INVARIANT: EndDate is never before StartDate
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalid)
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	if !m.StartDate.IsValid() || !m.EndDate.IsValid() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalid)
	}
	if m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalid, m.EndDate, m.StartDate)
	}
	return nil
}

// IsActive returns true if the membership allows entry.
// INVARIANT: Status field is not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Apply merges the non-nil fields of p into m.
// Identity fields (ID, GymID, CreatedAt) are never touched.
func (m *Member) Apply(p Patch) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.MembershipType != nil {
		m.MembershipType = *p.MembershipType
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}

// IndexOf returns the position of the member with the given internal ID, or -1.
func IndexOf(members []Member, id string) int {
	for i := range members {
		if members[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByGymID returns the first member carrying gymID.
func FindByGymID(members []Member, gymID string) (Member, bool) {
	for _, m := range members {
		if m.GymID == gymID {
			return m, true
		}
	}
	return Member{}, false
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
