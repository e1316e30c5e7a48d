// Package validate classifies each expected business day of a log.
package validate

import (
	"sort"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
)

// Rules bounds the hours of a valid day, inclusive on both ends.
type Rules struct {
	MinHours float64
	MaxHours float64
}

// DefaultRules is 7 to 9.5 hours per day.
var DefaultRules = Rules{MinHours: 7.0, MaxHours: 9.5}

// Classify returns one DayAggregate for every Monday–Friday between the first
// and last in-scope entry day, skipping holidays. overlapDays holds the days
// on which an in-scope entry overlaps (see overlap.Days). Entries on weekends
// or holidays are not classified.
func Classify(entries []model.TimeEntry, holidays model.HolidaySet, overlapDays map[time.Time]bool, scope model.Scope, rules Rules) []model.DayAggregate {
	seconds := make(map[time.Time]int64)
	var first, last time.Time
	inScope := 0
	for _, e := range entries {
		if !scope.Includes(e) {
			continue
		}
		if inScope == 0 || e.Day.Before(first) {
			first = e.Day
		}
		if inScope == 0 || e.Day.After(last) {
			last = e.Day
		}
		inScope++
		seconds[e.Day] += e.DurationSeconds
	}
	if inScope == 0 {
		return []model.DayAggregate{}
	}

	days := []model.DayAggregate{}
	for _, d := range timecalc.BusinessDays(first, last) {
		if holidays.Contains(d) {
			continue
		}
		days = append(days, classifyDay(d, seconds[d], overlapDays[d], rules))
	}
	return days
}

// DayStatus classifies one day from the in-scope entries on it, ignoring the
// business-day calendar.
func DayStatus(entries []model.TimeEntry, day time.Time, scope model.Scope, rules Rules) model.DayAggregate {
	day = timecalc.DateOf(day)
	var secs int64
	hasOverlap := false
	for _, e := range entries {
		if !scope.Includes(e) || !e.Day.Equal(day) {
			continue
		}
		secs += e.DurationSeconds
		hasOverlap = hasOverlap || e.Overlap
	}
	return classifyDay(day, secs, hasOverlap, rules)
}

// toHours converts a whole-second total with a single division.
func toHours(secs int64) float64 {
	return float64(secs) / 3600
}

func classifyDay(day time.Time, secs int64, hasOverlap bool, rules Rules) model.DayAggregate {
	total := toHours(secs)
	agg := model.DayAggregate{Day: day, TotalHours: total, HasOverlap: hasOverlap}

	if secs == 0 {
		agg.Reasons = []model.Reason{model.ReasonNoEntries}
		return agg
	}
	if hasOverlap {
		agg.Reasons = append(agg.Reasons, model.ReasonScheduleConflict)
	}
	if total < rules.MinHours {
		agg.Reasons = append(agg.Reasons, model.ReasonInsufficientTime)
	} else if total > rules.MaxHours {
		agg.Reasons = append(agg.Reasons, model.ReasonExcessTime)
	}
	if len(agg.Reasons) == 0 {
		agg.Reasons = []model.Reason{model.ReasonOK}
		agg.Valid = true
	}
	return agg
}

// Invalid returns the days that failed validation, in order.
func Invalid(days []model.DayAggregate) []model.DayAggregate {
	out := []model.DayAggregate{}
	for _, d := range days {
		if !d.Valid {
			out = append(out, d)
		}
	}
	return out
}

// Summary counts classified and invalid days.
type Summary struct {
	Registered int `json:"registered"`
	Invalid    int `json:"invalid"`
}

// Summarize returns the day counts shown as report metrics.
func Summarize(days []model.DayAggregate) Summary {
	return Summary{Registered: len(days), Invalid: len(Invalid(days))}
}

// OwnerTotals sums hours per owner, optionally restricted to one day (zero
// day means every day), sorted by owner.
func OwnerTotals(entries []model.TimeEntry, day time.Time) []model.OwnerTotal {
	sums := make(map[string]int64)
	for _, e := range entries {
		if !day.IsZero() && !e.Day.Equal(day) {
			continue
		}
		sums[e.Owner] += e.DurationSeconds
	}
	out := make([]model.OwnerTotal, 0, len(sums))
	for owner, secs := range sums {
		out = append(out, model.OwnerTotal{Owner: owner, Hours: toHours(secs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out
}

// Owners returns the distinct owners in entries, sorted.
func Owners(entries []model.TimeEntry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.Owner]; ok {
			continue
		}
		seen[e.Owner] = struct{}{}
		out = append(out, e.Owner)
	}
	sort.Strings(out)
	return out
}

// EntriesOn returns the in-scope entries of day sorted by start time.
func EntriesOn(entries []model.TimeEntry, day time.Time, scope model.Scope) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range entries {
		if scope.Includes(e) && e.Day.Equal(timecalc.DateOf(day)) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// LastDay returns the latest in-scope entry day, and false when there is none.
func LastDay(entries []model.TimeEntry, scope model.Scope) (time.Time, bool) {
	var last time.Time
	found := false
	for _, e := range entries {
		if scope.Includes(e) && (!found || e.Day.After(last)) {
			last, found = e.Day, true
		}
	}
	return last, found
}
