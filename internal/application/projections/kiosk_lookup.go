package projections

import (
	"context"
	"errors"

	domainMember "powerpump/internal/domain/member"
)

// KioskLookupResult tells the kiosk who is at the desk and which button to show.
// Found is false until the typed ID is long enough and matches a member.
type KioskLookupResult struct {
	Found     bool
	GymID     string
	Name      string
	Status    string
	CheckedIn bool
}

// KioskLookupDeps holds dependencies for QueryKioskLookup.
type KioskLookupDeps struct {
	MemberStore     MemberStore
	AttendanceStore AttendanceStore
	Clock           Clock
}

// QueryKioskLookup resolves a partially typed gym ID.
// IDs shorter than a full gym ID return an empty result without touching storage.
// PRE: none
// POST: When Found, CheckedIn reflects today's open session
func QueryKioskLookup(ctx context.Context, rawGymID string, deps KioskLookupDeps) (KioskLookupResult, error) {
	gymID := domainMember.NormalizeGymID(rawGymID)
	result := KioskLookupResult{GymID: gymID}
	if len(gymID) < domainMember.GymIDLength {
		return result, nil
	}

	m, err := QueryFindMemberByGymID(ctx, gymID, MemberLookupDeps{MemberStore: deps.MemberStore})
	if errors.Is(err, domainMember.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return KioskLookupResult{}, err
	}

	checkedIn, err := QueryIsCheckedIn(ctx, gymID, AttendanceDeps{AttendanceStore: deps.AttendanceStore, Clock: deps.Clock})
	if err != nil {
		return KioskLookupResult{}, err
	}
	result.Found = true
	result.Name = m.Name
	result.Status = m.Status
	result.CheckedIn = checkedIn
	return result, nil
}
