package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{61, "0:01:01"},
		{3661, "1:01:01"},
		{16200, "4:30:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFloorMinute(t *testing.T) {
	in := time.Date(2025, 3, 10, 8, 59, 59, 999, time.UTC)
	want := time.Date(2025, 3, 10, 8, 59, 0, 0, time.UTC)
	if got := timecalc.FloorMinute(in); !got.Equal(want) {
		t.Errorf("FloorMinute = %v, want %v", got, want)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	in := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := timecalc.DateOf(in); !got.Equal(want) {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestBusinessDays(t *testing.T) {
	// 2025-03-07 is a Friday, 2025-03-10 the following Monday.
	from := time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	got := timecalc.BusinessDays(from, to)
	want := []time.Time{
		time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("BusinessDays len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("BusinessDays[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBusinessDaysWeekendOnly(t *testing.T) {
	sat := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := timecalc.BusinessDays(sat, sun); len(got) != 0 {
		t.Errorf("BusinessDays(weekend) = %v, want none", got)
	}
	if got := timecalc.BusinessDays(sun, sat); got != nil {
		t.Errorf("BusinessDays(reversed) = %v, want nil", got)
	}
}

func TestYearRange(t *testing.T) {
	from, to := timecalc.YearRange(2024)
	if from.Format(timecalc.DateLayout) != "2024-01-01" || to.Format(timecalc.DateLayout) != "2024-12-31" {
		t.Errorf("YearRange(2024) = %v..%v", from, to)
	}
}

func TestParseDate(t *testing.T) {
	d, err := timecalc.ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("2025-03-10 weekday = %v, want Monday", d.Weekday())
	}
	if _, err := timecalc.ParseDate("10/03/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
