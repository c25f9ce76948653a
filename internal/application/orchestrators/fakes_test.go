package orchestrators

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-sql/civil"

	"powerpump/internal/domain/attendance"
	"powerpump/internal/domain/member"
)

// --- Mock stores ---

type mockMemberStore struct {
	members []member.Member
	loadErr error
	saveErr error
	saves   int
}

// Load returns a copy so callers cannot mutate stored state without Save.
func (s *mockMemberStore) Load(_ context.Context) ([]member.Member, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]member.Member{}, s.members...), nil
}

func (s *mockMemberStore) Save(_ context.Context, members []member.Member) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.members = append([]member.Member{}, members...)
	return nil
}

type mockAttendanceStore struct {
	records []attendance.Record
	loadErr error
	saveErr error
	saves   int
}

func (s *mockAttendanceStore) Load(_ context.Context) ([]attendance.Record, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]attendance.Record{}, s.records...), nil
}

func (s *mockAttendanceStore) Save(_ context.Context, records []attendance.Record) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.records = append([]attendance.Record{}, records...)
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	clock  map[string]int
	member map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{clock: map[string]int{}, member: map[string]int{}}
}

func (c *countingMetrics) CountClock(action, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock[action+"/"+outcome]++
}

func (c *countingMetrics) CountMember(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.member[kind]++
}

type recordingMailer struct {
	sent []member.Member
	err  error
}

func (r *recordingMailer) SendWelcome(_ context.Context, m member.Member) error {
	r.sent = append(r.sent, m)
	return r.err
}

// --- Fixtures ---

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func demoMember(id, gymID, name, status string) member.Member {
	return member.Member{
		ID:             id,
		GymID:          gymID,
		Name:           name,
		MembershipType: member.TypeBasic,
		StartDate:      civil.Date{Year: 2026, Month: 1, Day: 1},
		EndDate:        civil.Date{Year: 2027, Month: 1, Day: 1},
		Status:         status,
	}
}

type clockFixture struct {
	members    *mockMemberStore
	attendance *mockAttendanceStore
	metrics    *countingMetrics
	now        time.Time
	deps       ClockDeps
}

// newClockFixture seeds PP10001 (active), PP20002 (suspended) and PP30003 (expired).
func newClockFixture() *clockFixture {
	f := &clockFixture{
		members: &mockMemberStore{members: []member.Member{
			demoMember("m1", "PP10001", "John Smith", member.StatusActive),
			demoMember("m2", "PP20002", "Sarah Johnson", member.StatusSuspended),
			demoMember("m3", "PP30003", "Mike Williams", member.StatusExpired),
		}},
		attendance: &mockAttendanceStore{},
		metrics:    newCountingMetrics(),
		now:        fixedNow,
	}
	f.deps = ClockDeps{
		MemberStore:     f.members,
		AttendanceStore: f.attendance,
		Lock:            &sync.Mutex{},
		GenerateID:      sequence("rec"),
		Now:             func() time.Time { return f.now },
		Location:        time.UTC,
		Metrics:         f.metrics,
	}
	return f
}

func (f *clockFixture) openToday(gymID string) int {
	n := 0
	today := attendance.Today(f.now, time.UTC)
	for _, r := range f.attendance.records {
		if r.GymID == gymID && r.Date == today && r.IsOpen() {
			n++
		}
	}
	return n
}
