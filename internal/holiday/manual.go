package holiday

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"
)

// MonthDay is a date that repeats every year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// In returns the date in year, and false when the pair does not exist in
// that year (e.g. 02-29 outside leap years).
func (md MonthDay) In(year int) (time.Time, bool) {
	t := time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != md.Month || t.Day() != md.Day {
		return time.Time{}, false
	}
	return t, true
}

// ManualTable maps a category (municipal, company, ...) to its yearly dates.
// Categories carry no behaviour; every date is merged into one list.
type ManualTable map[string][]MonthDay

// DefaultManualTable returns the built-in São Paulo table.
func DefaultManualTable() ManualTable {
	return ManualTable{
		"municipal": {
			{time.January, 25}, // São Paulo anniversary
			{time.April, 23},   // São Jorge
		},
		"company": {
			{time.June, 12},
			{time.December, 24},
			{time.December, 31},
		},
		"regional": {
			{time.November, 20}, // Consciência Negra
			{time.July, 9},      // Revolução Constitucionalista
		},
		"optional": {},
	}
}

// ParseManualTable converts a category → ["MM-DD"] table from config.
// A nil table yields DefaultManualTable.
func ParseManualTable(raw map[string][]string) (ManualTable, error) {
	if raw == nil {
		return DefaultManualTable(), nil
	}
	table := make(ManualTable, len(raw))
	for category, values := range raw {
		days := make([]MonthDay, 0, len(values))
		for _, v := range values {
			md, err := parseMonthDay(v)
			if err != nil {
				return nil, fmt.Errorf("holiday %q in category %q: %w", v, category, err)
			}
			days = append(days, md)
		}
		table[category] = days
	}
	return table, nil
}

func parseMonthDay(s string) (MonthDay, error) {
	if len(s) != 5 || s[2] != '-' {
		return MonthDay{}, errors.New("want MM-DD")
	}
	m, errM := strconv.Atoi(s[:2])
	d, errD := strconv.Atoi(s[3:])
	if errM != nil || errD != nil {
		return MonthDay{}, errors.New("want MM-DD")
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return MonthDay{}, errors.New("month or day out of range")
	}
	return MonthDay{Month: time.Month(m), Day: d}, nil
}

// Dates flattens the table into concrete dates for year. Pairs that do not
// exist in year are skipped and logged.
func (t ManualTable) Dates(year int, logger *slog.Logger) []time.Time {
	categories := make([]string, 0, len(t))
	for c := range t {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var out []time.Time
	for _, c := range categories {
		for _, md := range t[c] {
			d, ok := md.In(year)
			if !ok {
				if logger != nil {
					logger.Warn("manual_holiday_skipped", "category", c, "date", md.String(), "year", year)
				}
				continue
			}
			out = append(out, d)
		}
	}
	return out
}
