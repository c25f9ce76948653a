package projections

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-sql/civil"

	domainAttendance "powerpump/internal/domain/attendance"
)

// ErrInvalidRange is returned when a range bound is not a valid date.
var ErrInvalidRange = errors.New("start and end must be valid dates")

// AttendanceDeps holds dependencies for the attendance queries.
type AttendanceDeps struct {
	AttendanceStore AttendanceStore
	Clock           Clock
}

// QueryIsCheckedIn reports whether gymID has an open session today.
// PRE: none
// POST: Returns true iff an open record for gymID is dated today
func QueryIsCheckedIn(ctx context.Context, gymID string, deps AttendanceDeps) (bool, error) {
	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load attendance: %w", err)
	}
	return domainAttendance.FindOpen(records, gymID, deps.Clock.Today()) >= 0, nil
}

// QueryHistoryForMember returns a member's records, newest clock-in first.
// Records of deleted members remain queryable by their old ID.
func QueryHistoryForMember(ctx context.Context, memberID string, deps AttendanceDeps) ([]domainAttendance.Record, error) {
	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	return domainAttendance.ForMember(records, memberID), nil
}

// QueryRecordsForToday returns records dated today, newest clock-in first.
// INVARIANT: Equals QueryRecordsInRange(today, today)
func QueryRecordsForToday(ctx context.Context, deps AttendanceDeps) ([]domainAttendance.Record, error) {
	today := deps.Clock.Today()
	return QueryRecordsInRange(ctx, RecordsInRangeQuery{Start: today, End: today}, deps)
}

// RecordsInRangeQuery carries inclusive date bounds.
type RecordsInRangeQuery struct {
	Start civil.Date
	End   civil.Date
}

// QueryRecordsInRange returns records dated within [Start, End], newest clock-in first.
// PRE: Start and End are valid dates
// POST: Returns an empty slice when Start is after End
func QueryRecordsInRange(ctx context.Context, query RecordsInRangeQuery, deps AttendanceDeps) ([]domainAttendance.Record, error) {
	if !query.Start.IsValid() || !query.End.IsValid() {
		return nil, ErrInvalidRange
	}
	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	return domainAttendance.InRange(records, query.Start, query.End), nil
}
