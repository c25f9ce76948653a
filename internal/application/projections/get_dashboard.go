package projections

import (
	"context"
	"fmt"
)

// Stats summarizes the registry and today's attendance.
type Stats struct {
	TotalMembers   int
	ActiveMembers  int
	TodayEntries   int
	CurrentlyInGym int
}

// DashboardDeps holds dependencies for the dashboard projection.
type DashboardDeps struct {
	MemberStore     MemberStore
	AttendanceStore AttendanceStore
	Clock           Clock
}

// QueryComputeStats computes the dashboard counters from one read of each collection.
// PRE: none
// POST: CurrentlyInGym counts today's records without a clock-out
// INVARIANT: Read-only
func QueryComputeStats(ctx context.Context, deps DashboardDeps) (Stats, error) {
	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load members: %w", err)
	}
	records, err := deps.AttendanceStore.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load attendance: %w", err)
	}

	stats := Stats{TotalMembers: len(members)}
	for _, m := range members {
		if m.IsActive() {
			stats.ActiveMembers++
		}
	}

	today := deps.Clock.Today()
	for _, r := range records {
		if r.Date != today {
			continue
		}
		stats.TodayEntries++
		if r.IsOpen() {
			stats.CurrentlyInGym++
		}
	}
	return stats, nil
}
