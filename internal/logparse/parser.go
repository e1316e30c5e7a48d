// Package logparse recovers time entries from the block-delimited log sheet.
//
// A block starts at a row whose first cell is "Started By" and ends at a row
// whose first cell is "Total". The row right above the start sentinel holds
// the block description. Inside a block every row carrying an owner and
// start/end date and time columns becomes one entry.
package logparse

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
)

// Column layout of an entry row.
const (
	ColOwner     = 0
	ColStartDate = 2
	ColEndDate   = 3
	ColStartTime = 4
	ColEndTime   = 5
)

var (
	// ErrMalformedRow marks an entry row whose date or time cannot be parsed.
	ErrMalformedRow = errors.New("malformed log row")
	// ErrNegativeDuration marks an entry that ends before it starts.
	ErrNegativeDuration = errors.New("entry ends before it starts")
)

// RowError identifies the log row that aborted a parse. Row is 1-based, as
// shown by spreadsheet applications.
type RowError struct {
	Row    int
	Column string
	Value  string
	Kind   error
	Err    error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("row %d: %v", e.Row, e.Kind)
	if e.Column != "" {
		msg += fmt.Sprintf(" (%s %q)", e.Column, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RowError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Parse scans grid and returns the entries of every block in row order.
// The first malformed or negative-duration row aborts the whole parse.
func Parse(grid Grid) ([]model.TimeEntry, error) {
	var (
		entries     []model.TimeEntry
		description string
		st          = stateOutside
	)

	for r := range grid {
		var act action
		st, act = next(st, grid.Text(r, 0))

		switch act {
		case actionOpenBlock:
			description = grid.Text(r-1, 0)
		case actionEmit:
			entry, ok, err := parseRow(grid, r, description)
			if err != nil {
				return nil, err
			}
			if ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries, nil
}

// parseRow builds an entry from row r. ok is false for rows missing any of
// the required cells; those are separators, not errors.
func parseRow(grid Grid, r int, description string) (model.TimeEntry, bool, error) {
	owner, okOwner := grid.Cell(r, ColOwner)
	startDate, okSD := grid.Cell(r, ColStartDate)
	endDate, okED := grid.Cell(r, ColEndDate)
	startTime, okST := grid.Cell(r, ColStartTime)
	endTime, okET := grid.Cell(r, ColEndTime)
	if !okOwner || !okSD || !okED || !okST || !okET {
		return model.TimeEntry{}, false, nil
	}

	start, err := combine(r, startDate, startTime, "start")
	if err != nil {
		return model.TimeEntry{}, false, err
	}
	end, err := combine(r, endDate, endTime, "end")
	if err != nil {
		return model.TimeEntry{}, false, err
	}

	dur := end.Sub(start)
	if dur < 0 {
		return model.TimeEntry{}, false, &RowError{
			Row:  r + 1,
			Kind: ErrNegativeDuration,
			Err:  fmt.Errorf("start %s, end %s", start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05")),
		}
	}

	return model.TimeEntry{
		Row:             r + 1,
		Owner:           owner,
		Description:     description,
		Start:           start,
		End:             end,
		DurationSeconds: int64(dur / time.Second),
		Day:             timecalc.DateOf(start),
	}, true, nil
}

func combine(r int, dateVal, clockVal, which string) (time.Time, error) {
	day, err := parseDate(dateVal)
	if err != nil {
		return time.Time{}, &RowError{Row: r + 1, Column: which + " date", Value: dateVal, Kind: ErrMalformedRow, Err: err}
	}
	offset, err := parseClock(clockVal)
	if err != nil {
		return time.Time{}, &RowError{Row: r + 1, Column: which + " time", Value: clockVal, Kind: ErrMalformedRow, Err: err}
	}
	return day.Add(offset), nil
}
