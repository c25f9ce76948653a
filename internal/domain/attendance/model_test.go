package attendance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-sql/civil"

	"powerpump/internal/domain/attendance"
)

var day = civil.Date{Year: 2026, Month: 3, Day: 14}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestRecordValidate(t *testing.T) {
	out := at(9, 0)
	early := at(7, 0)
	tests := []struct {
		name    string
		record  attendance.Record
		wantErr error
	}{
		{"open record", attendance.Record{MemberID: "m1", GymID: "PP10001", Date: day, ClockIn: at(8, 0)}, nil},
		{"closed record", attendance.Record{MemberID: "m1", GymID: "PP10001", Date: day, ClockIn: at(8, 0), ClockOut: &out}, nil},
		{"missing member", attendance.Record{GymID: "PP10001", Date: day, ClockIn: at(8, 0)}, attendance.ErrMissingMember},
		{"missing clock in", attendance.Record{MemberID: "m1", GymID: "PP10001", Date: day}, attendance.ErrMissingClockIn},
		{"missing date", attendance.Record{MemberID: "m1", GymID: "PP10001", ClockIn: at(8, 0)}, attendance.ErrMissingRecordDate},
		{"clock out before in", attendance.Record{MemberID: "m1", GymID: "PP10001", Date: day, ClockIn: at(8, 0), ClockOut: &early}, attendance.ErrClockOutTooEarly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordClose(t *testing.T) {
	r := attendance.Record{MemberID: "m1", GymID: "PP10001", Date: day, ClockIn: at(8, 0)}
	if !r.IsOpen() {
		t.Fatal("new record should be open")
	}
	if err := r.Close(at(7, 59)); !errors.Is(err, attendance.ErrClockOutTooEarly) {
		t.Errorf("Close before clock-in = %v, want ErrClockOutTooEarly", err)
	}
	if err := r.Close(at(9, 30)); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.IsOpen() {
		t.Error("record should be closed")
	}
	if got := r.Duration(at(23, 0)); got != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", got)
	}
	if err := r.Close(at(10, 0)); !errors.Is(err, attendance.ErrAlreadyClosed) {
		t.Errorf("second Close = %v, want ErrAlreadyClosed", err)
	}
}

func TestToday(t *testing.T) {
	auckland, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	if got := attendance.Today(now, time.UTC); got != day {
		t.Errorf("Today(UTC) = %s, want %s", got, day)
	}
	if got := attendance.Today(now, auckland); got != day.AddDays(1) {
		t.Errorf("Today(Auckland) = %s, want %s", got, day.AddDays(1))
	}
}

func TestFindOpen(t *testing.T) {
	out := at(9, 0)
	records := []attendance.Record{
		{ID: "r1", GymID: "PP10001", Date: day, ClockIn: at(7, 0), ClockOut: &out},
		{ID: "r2", GymID: "PP10001", Date: day.AddDays(-1), ClockIn: at(7, 0)},
		{ID: "r3", GymID: "PP10001", Date: day, ClockIn: at(10, 0)},
	}
	if i := attendance.FindOpen(records, "PP10001", day); i != 2 {
		t.Errorf("FindOpen = %d, want 2", i)
	}
	if i := attendance.FindOpen(records, "PP20002", day); i != -1 {
		t.Errorf("FindOpen other member = %d, want -1", i)
	}
	if i := attendance.FindOpen(records[:2], "PP10001", day); i != -1 {
		t.Errorf("FindOpen ignores closed and other days, got %d", i)
	}
}

func TestInRangeAndForMember(t *testing.T) {
	records := []attendance.Record{
		{ID: "a", MemberID: "m1", Date: day.AddDays(-2), ClockIn: at(6, 0).AddDate(0, 0, -2)},
		{ID: "b", MemberID: "m2", Date: day.AddDays(-1), ClockIn: at(6, 0).AddDate(0, 0, -1)},
		{ID: "c", MemberID: "m1", Date: day, ClockIn: at(6, 0)},
		{ID: "d", MemberID: "m1", Date: day, ClockIn: at(18, 0)},
	}

	got := attendance.InRange(records, day.AddDays(-1), day)
	wantIDs := []string{"d", "c", "b"}
	if len(got) != len(wantIDs) {
		t.Fatalf("InRange returned %d records, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("InRange[%d] = %s, want %s", i, got[i].ID, id)
		}
	}

	if got := attendance.InRange(records, day, day.AddDays(-1)); len(got) != 0 {
		t.Errorf("inverted range returned %d records, want 0", len(got))
	}

	hist := attendance.ForMember(records, "m1")
	if len(hist) != 3 || hist[0].ID != "d" || hist[2].ID != "a" {
		t.Errorf("ForMember order wrong: %+v", hist)
	}
	if got := attendance.ForMember(records, "nobody"); got == nil || len(got) != 0 {
		t.Errorf("ForMember(nobody) = %v, want empty non-nil slice", got)
	}
}
