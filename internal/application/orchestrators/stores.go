package orchestrators

import (
	"context"
	"sync"
	"time"

	"powerpump/internal/domain/attendance"
	"powerpump/internal/domain/member"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	Load(ctx context.Context) ([]member.Member, error)
	Save(ctx context.Context, members []member.Member) error
}

// AttendanceStore defines the interface for attendance persistence.
type AttendanceStore interface {
	Load(ctx context.Context) ([]attendance.Record, error)
	Save(ctx context.Context, records []attendance.Record) error
}

// MemberMetrics counts member registry writes.
type MemberMetrics interface {
	CountMember(kind string)
}

// ClockMetrics counts clock attempts by action and outcome.
type ClockMetrics interface {
	CountClock(action, outcome string)
}

// acquire locks l and returns its unlock. A nil Locker means the caller
// accepts single-writer semantics.
func acquire(l sync.Locker) func() {
	if l == nil {
		return func() {}
	}
	l.Lock()
	return l.Unlock
}

func nowFrom(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return time.Now()
}
