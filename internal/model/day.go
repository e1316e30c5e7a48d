package model

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Reason is a validation reason code attached to a business day.
type Reason string

const (
	ReasonNoEntries        Reason = "No entries"
	ReasonScheduleConflict Reason = "Schedule conflict"
	ReasonInsufficientTime Reason = "Insufficient time"
	ReasonExcessTime       Reason = "Excess time"
	ReasonOK               Reason = "OK"
)

// DayAggregate is the classification of one expected business day.
type DayAggregate struct {
	Day        time.Time `json:"day"`
	TotalHours float64   `json:"total_hours"`
	HasOverlap bool      `json:"has_overlap"`
	Reasons    []Reason  `json:"reasons"`
	Valid      bool      `json:"valid"`
}

// ReasonText joins the reason codes for display.
func (d DayAggregate) ReasonText() string {
	parts := make([]string, len(d.Reasons))
	for i, r := range d.Reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// HolidaySet is an ascending, duplicate-free list of non-working dates.
// Every element is a UTC midnight.
type HolidaySet struct {
	dates []time.Time
}

// NewHolidaySet truncates dates to the day, removes duplicates and sorts them.
func NewHolidaySet(dates []time.Time) HolidaySet {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return HolidaySet{dates: out}
}

// Dates returns a copy of the sorted holiday dates.
func (h HolidaySet) Dates() []time.Time {
	return append([]time.Time(nil), h.dates...)
}

// Len returns the number of holidays.
func (h HolidaySet) Len() int { return len(h.dates) }

// Contains reports whether the calendar date of t is a holiday.
func (h HolidaySet) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	i := sort.Search(len(h.dates), func(i int) bool { return !h.dates[i].Before(day) })
	return i < len(h.dates) && h.dates[i].Equal(day)
}

// MarshalJSON encodes the set as ISO dates.
func (h HolidaySet) MarshalJSON() ([]byte, error) {
	out := make([]string, len(h.dates))
	for i, d := range h.dates {
		out[i] = d.Format("2006-01-02")
	}
	return json.Marshal(out)
}
