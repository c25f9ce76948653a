package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"powerpump/internal/domain/attendance"
	"powerpump/internal/domain/member"
)

// FailureReason classifies a refused clock attempt.
type FailureReason string

// Clock failure reasons.
const (
	ReasonNotFound           FailureReason = "not_found"
	ReasonMembershipInactive FailureReason = "membership_inactive"
	ReasonAlreadyOpen        FailureReason = "already_open"
	ReasonNoOpenSession      FailureReason = "no_open_session"
)

// Clock actions.
const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"
)

// Desk messages shown at the kiosk.
const (
	msgNotFound      = "Invalid Gym ID. User not found."
	msgInactive      = "Membership is %s. Please contact reception."
	msgAlreadyOpen   = "Already checked in. Please check out first."
	msgClockedIn     = "Welcome, %s! Checked in successfully."
	msgNoOpenSession = "No active session found. Please check in first."
	msgClockedOut    = "Goodbye, %s! Checked out successfully."
)

// ClockResult is the outcome of a clock attempt. Refusals are values, not errors:
// Success is false, Reason says why and Message is ready for display.
type ClockResult struct {
	Success bool
	Action  string
	Reason  FailureReason
	Message string
	Record  *attendance.Record
}

// ClockInput carries the gym ID typed at the kiosk.
type ClockInput struct {
	GymID string
}

// ClockDeps holds dependencies for the clock orchestrators.
type ClockDeps struct {
	MemberStore     MemberStore
	AttendanceStore AttendanceStore
	Lock            sync.Locker
	GenerateID      func() string    // injectable for testing
	Now             func() time.Time // injectable for testing
	Location        *time.Location   // defines "today"; nil means local time
	Metrics         ClockMetrics     // optional
}

// ExecuteClockIn opens an attendance session for the member holding GymID.
// PRE: none
// POST: On success a new open record dated today is appended and saved
// INVARIANT: At most one open record per gym ID per day
func ExecuteClockIn(ctx context.Context, input ClockInput, deps ClockDeps) (ClockResult, error) {
	unlock := acquire(deps.Lock)
	defer unlock()
	return clockIn(ctx, input.GymID, nowFrom(deps.Now), deps)
}

// ExecuteClockOut closes today's open session for the member holding GymID.
// PRE: none
// POST: On success the open record's ClockOut is set to now, or to its ClockIn
// when the clock has stepped back since, and saved
func ExecuteClockOut(ctx context.Context, input ClockInput, deps ClockDeps) (ClockResult, error) {
	unlock := acquire(deps.Lock)
	defer unlock()
	return clockOut(ctx, input.GymID, nowFrom(deps.Now), deps)
}

// ExecuteKioskToggle clocks the member out when a session is open today and in otherwise.
// The gym ID is trimmed and upper-cased first. Lookup and write share one lock hold.
// PRE: none
// POST: Exactly one of clock-in or clock-out was attempted
func ExecuteKioskToggle(ctx context.Context, input ClockInput, deps ClockDeps) (ClockResult, error) {
	gymID := member.NormalizeGymID(input.GymID)

	unlock := acquire(deps.Lock)
	defer unlock()

	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return ClockResult{}, fmt.Errorf("load attendance: %w", err)
	}
	// One reading of the clock decides the direction and dates the write.
	now := nowFrom(deps.Now)
	today := attendance.Today(now, deps.Location)
	if attendance.FindOpen(records, gymID, today) >= 0 {
		return clockOut(ctx, gymID, now, deps)
	}
	return clockIn(ctx, gymID, now, deps)
}

func clockIn(ctx context.Context, gymID string, now time.Time, deps ClockDeps) (ClockResult, error) {
	today := attendance.Today(now, deps.Location)

	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return ClockResult{}, fmt.Errorf("load members: %w", err)
	}
	m, ok := member.FindByGymID(members, gymID)
	if !ok {
		return refuse(deps, ActionClockIn, gymID, ReasonNotFound, msgNotFound), nil
	}
	if !m.IsActive() {
		return refuse(deps, ActionClockIn, gymID, ReasonMembershipInactive, fmt.Sprintf(msgInactive, m.Status)), nil
	}

	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return ClockResult{}, fmt.Errorf("load attendance: %w", err)
	}
	if attendance.FindOpen(records, gymID, today) >= 0 {
		return refuse(deps, ActionClockIn, gymID, ReasonAlreadyOpen, msgAlreadyOpen), nil
	}

	rec := attendance.Record{
		ID:         newID(deps.GenerateID),
		MemberID:   m.ID,
		GymID:      gymID,
		MemberName: m.Name,
		Date:       today,
		ClockIn:    now,
	}
	if err := rec.Validate(); err != nil {
		return ClockResult{}, err
	}
	records = append(records, rec)
	if err := deps.AttendanceStore.Save(ctx, records); err != nil {
		return ClockResult{}, fmt.Errorf("save attendance: %w", err)
	}

	slog.Info("checkin_event", "event", "member_clocked_in", "member_id", m.ID, "gym_id", gymID, "record_id", rec.ID)
	countClock(deps, ActionClockIn, "ok")
	return ClockResult{
		Success: true,
		Action:  ActionClockIn,
		Message: fmt.Sprintf(msgClockedIn, m.Name),
		Record:  &rec,
	}, nil
}

func clockOut(ctx context.Context, gymID string, now time.Time, deps ClockDeps) (ClockResult, error) {
	today := attendance.Today(now, deps.Location)

	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return ClockResult{}, fmt.Errorf("load members: %w", err)
	}
	m, ok := member.FindByGymID(members, gymID)
	if !ok {
		return refuse(deps, ActionClockOut, gymID, ReasonNotFound, msgNotFound), nil
	}

	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return ClockResult{}, fmt.Errorf("load attendance: %w", err)
	}
	i := attendance.FindOpen(records, gymID, today)
	if i < 0 {
		return refuse(deps, ActionClockOut, gymID, ReasonNoOpenSession, msgNoOpenSession), nil
	}
	closeAt := now
	if closeAt.Before(records[i].ClockIn) {
		slog.Warn("checkin_event", "event", "clock_out_before_clock_in", "gym_id", gymID, "record_id", records[i].ID, "clock_in", records[i].ClockIn, "now", now)
		closeAt = records[i].ClockIn
	}
	if err := records[i].Close(closeAt); err != nil {
		return ClockResult{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, records); err != nil {
		return ClockResult{}, fmt.Errorf("save attendance: %w", err)
	}

	rec := records[i]
	slog.Info("checkin_event", "event", "member_clocked_out", "member_id", m.ID, "gym_id", gymID, "record_id", rec.ID, "minutes", int(rec.Duration(closeAt).Minutes()))
	countClock(deps, ActionClockOut, "ok")
	return ClockResult{
		Success: true,
		Action:  ActionClockOut,
		Message: fmt.Sprintf(msgClockedOut, m.Name),
		Record:  &rec,
	}, nil
}

func refuse(deps ClockDeps, action, gymID string, reason FailureReason, message string) ClockResult {
	slog.Info("checkin_event", "event", action+"_refused", "gym_id", gymID, "reason", string(reason))
	countClock(deps, action, string(reason))
	return ClockResult{Success: false, Action: action, Reason: reason, Message: message}
}

func countClock(deps ClockDeps, action, outcome string) {
	if deps.Metrics != nil {
		deps.Metrics.CountClock(action, outcome)
	}
}
