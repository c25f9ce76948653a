package attendance

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"github.com/golang-sql/civil"
)

// Domain errors
var (
	ErrAlreadyClosed     = errors.New("attendance record is already closed")
	ErrClockOutTooEarly  = errors.New("clock-out time cannot be before clock-in time")
	ErrMissingMember     = errors.New("attendance must be associated with a member")
	ErrMissingClockIn    = errors.New("clock-in time must be set")
	ErrMissingRecordDate = errors.New("attendance date must be set")
)

// Record is one clock-in attempt. It is open while ClockOut is nil.
// MemberName and GymID are copied from the member at clock-in time.
type Record struct {
	ID         string
	MemberID   string
	GymID      string
	MemberName string
	Date       civil.Date
	ClockIn    time.Time
	ClockOut   *time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if r.MemberID == "" || r.GymID == "" {
		return ErrMissingMember
	}
	if r.ClockIn.IsZero() {
		return ErrMissingClockIn
	}
	if !r.Date.IsValid() {
		return ErrMissingRecordDate
	}
	if r.ClockOut != nil && r.ClockOut.Before(r.ClockIn) {
		return ErrClockOutTooEarly
	}
	return nil
}

// IsOpen returns true while the member has not clocked out.
func (r *Record) IsOpen() bool {
	return r.ClockOut == nil
}

// Close sets the clock-out time.
// PRE: Record is open
// POST: ClockOut is set to at
func (r *Record) Close(at time.Time) error {
	if !r.IsOpen() {
		return ErrAlreadyClosed
	}
	if at.Before(r.ClockIn) {
		return ErrClockOutTooEarly
	}
	r.ClockOut = &at
	return nil
}

// Duration returns the session length, or the time elapsed up to now if still open.
func (r *Record) Duration(now time.Time) time.Duration {
	if r.ClockOut != nil {
		return r.ClockOut.Sub(r.ClockIn)
	}
	return now.Sub(r.ClockIn)
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(now.In(loc))
}

// FindOpen returns the index of the open record for gymID on day, or -1.
func FindOpen(records []Record, gymID string, day civil.Date) int {
	for i := range records {
		if records[i].GymID == gymID && records[i].Date == day && records[i].IsOpen() {
			return i
		}
	}
	return -1
}

// ForMember returns the records of memberID, newest clock-in first.
func ForMember(records []Record, memberID string) []Record {
	out := []Record{}
	for _, r := range records {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// InRange returns records dated within [start, end], newest clock-in first.
// An inverted range yields no records.
func InRange(records []Record, start, end civil.Date) []Record {
	out := []Record{}
	for _, r := range records {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders records by clock-in time descending. Ties keep their stored order.
func SortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(b.ClockIn.UnixNano(), a.ClockIn.UnixNano())
	})
}
