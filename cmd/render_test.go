package cmd

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleDays() []model.DayAggregate {
	return []model.DayAggregate{
		{Day: day("2025-03-10"), TotalHours: 9, Reasons: []model.Reason{model.ReasonOK}, Valid: true},
		{Day: day("2025-03-11"), TotalHours: 8.5, HasOverlap: true, Reasons: []model.Reason{model.ReasonScheduleConflict, model.ReasonInsufficientTime}},
	}
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"table", false},
		{"csv", false},
		{"json", false},
		{"md", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := checkFormat(tt.format); (err != nil) != tt.wantErr {
			t.Errorf("checkFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestWriteDaysCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDays(&buf, formatCSV, sampleDays()); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	want := [][]string{
		{"Date", "Day", "Hours", "Overlap", "Reason"},
		{"2025-03-10", "Mon", "9.00", "no", "OK"},
		{"2025-03-11", "Tue", "8.50", "yes", "Schedule conflict, Insufficient time"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("record %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestWriteDaysTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDays(&buf, formatTable, sampleDays()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Date", "Reason", "2025-03-11", "Schedule conflict, Insufficient time"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, validate.Summary{Registered: 21, Invalid: 3})
	if !strings.Contains(buf.String(), "Days registered:  21") || !strings.Contains(buf.String(), "Days with errors: 3") {
		t.Errorf("summary = %q", buf.String())
	}
}

func TestClock(t *testing.T) {
	d := day("2025-03-10")
	tests := []struct {
		t    time.Time
		want string
	}{
		{d.Add(8 * time.Hour), "08:00"},
		{d.Add(23*time.Hour + 59*time.Minute), "23:59"},
		{d.Add(25 * time.Hour), "2025-03-11 01:00"},
	}
	for _, tt := range tests {
		if got := clock(tt.t, d); got != tt.want {
			t.Errorf("clock(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestWriteEntriesCSV(t *testing.T) {
	d := day("2025-03-10")
	entries := []model.TimeEntry{{
		Row:             3,
		Owner:           "ana",
		Description:     "Review, planning",
		Start:           d.Add(8 * time.Hour),
		End:             d.Add(12*time.Hour + 30*time.Minute),
		DurationSeconds: 4*3600 + 30*60,
		Day:             d,
		Overlap:         true,
	}}
	var buf bytes.Buffer
	if err := writeEntries(&buf, formatCSV, entries); err != nil {
		t.Fatal(err)
	}
	want := "Row,Owner,Description,Start,End,Duration,Overlap\n" +
		"3,ana,\"Review, planning\",08:00,12:30,4:30:00,yes\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteHolidaysJSON(t *testing.T) {
	set := model.NewHolidaySet([]time.Time{day("2025-12-25"), day("2025-01-01")})
	var buf bytes.Buffer
	if err := writeHolidays(&buf, formatJSON, set); err != nil {
		t.Fatal(err)
	}
	got := strings.Join(strings.Fields(buf.String()), "")
	if got != `["2025-01-01","2025-12-25"]` {
		t.Errorf("got %s", got)
	}
}

func TestWriteTotalsTable(t *testing.T) {
	var buf bytes.Buffer
	totals := []model.OwnerTotal{{Owner: "ana", Hours: 6.5}, {Owner: "bruno", Hours: 2}}
	if err := writeTotals(&buf, formatTable, totals); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "6.50") || !strings.Contains(buf.String(), "6h 30m") || !strings.Contains(buf.String(), "bruno") {
		t.Errorf("table = %s", buf.String())
	}
}

func TestWriteDayStatus(t *testing.T) {
	tests := []struct {
		day  model.DayAggregate
		want string
	}{
		{sampleDays()[0], "Day total: 9.00h (valid: OK)\n"},
		{sampleDays()[1], "Day total: 8.50h (invalid: Schedule conflict, Insufficient time)\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		writeDayStatus(&buf, tt.day)
		if buf.String() != tt.want {
			t.Errorf("writeDayStatus = %q, want %q", buf.String(), tt.want)
		}
	}
}
