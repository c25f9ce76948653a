package projections

import (
	"context"
	"time"

	"github.com/golang-sql/civil"

	domainAttendance "powerpump/internal/domain/attendance"
	domainMember "powerpump/internal/domain/member"
)

// MemberStore interface for member queries.
type MemberStore interface {
	Load(ctx context.Context) ([]domainMember.Member, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	Load(ctx context.Context) ([]domainAttendance.Record, error)
}

// Clock supplies "now" and the time zone that defines "today".
// The zero Clock uses time.Now in local time.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Today returns the current calendar day in the clock's zone.
func (c Clock) Today() civil.Date {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	return domainAttendance.Today(now, c.Location)
}
