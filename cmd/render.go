package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatCSV, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q: use table, csv or json", format)
}

// writeRows renders headers and rows as a bordered table or as CSV.
func writeRows(w io.Writer, format string, headers []string, rows [][]string) error {
	if format == formatCSV {
		cw := csv.NewWriter(w)
		if err := cw.Write(headers); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeDays(w io.Writer, format string, days []model.DayAggregate) error {
	if format == formatJSON {
		return writeJSON(w, days)
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Day.Format(timecalc.DateLayout),
			d.Day.Weekday().String()[:3],
			hours(d.TotalHours),
			yesNo(d.HasOverlap),
			d.ReasonText(),
		})
	}
	return writeRows(w, format, []string{"Date", "Day", "Hours", "Overlap", "Reason"}, rows)
}

func writeSummary(w io.Writer, s validate.Summary) {
	fmt.Fprintf(w, "Days registered:  %d\n", s.Registered)
	fmt.Fprintf(w, "Days with errors: %d\n", s.Invalid)
}

// writeDayStatus prints a day's total and whether it passes the daily rules.
func writeDayStatus(w io.Writer, d model.DayAggregate) {
	status := "valid"
	if !d.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "Day total: %sh (%s: %s)\n", hours(d.TotalHours), status, d.ReasonText())
}

// clock formats an entry bound; a bound on another day than the entry's day
// carries its date.
func clock(t, day time.Time) string {
	if timecalc.SameDay(t, day) {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02 15:04")
}

func writeEntries(w io.Writer, format string, entries []model.TimeEntry) error {
	if format == formatJSON {
		return writeJSON(w, entries)
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Row),
			e.Owner,
			e.Description,
			clock(e.Start, e.Day),
			clock(e.End, e.Day),
			timecalc.FormatDurationHHMMSS(e.DurationSeconds),
			yesNo(e.Overlap),
		})
	}
	return writeRows(w, format, []string{"Row", "Owner", "Description", "Start", "End", "Duration", "Overlap"}, rows)
}

func writeTotals(w io.Writer, format string, totals []model.OwnerTotal) error {
	if format == formatJSON {
		return writeJSON(w, totals)
	}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		seconds := int64(math.Round(t.Hours * 3600))
		rows = append(rows, []string{t.Owner, hours(t.Hours), timecalc.FormatDuration(seconds)})
	}
	return writeRows(w, format, []string{"Owner", "Hours", "Time"}, rows)
}

func writeHolidays(w io.Writer, format string, set model.HolidaySet) error {
	if format == formatJSON {
		return writeJSON(w, set)
	}
	dates := set.Dates()
	rows := make([][]string, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, []string{d.Format(timecalc.DateLayout), d.Weekday().String()})
	}
	return writeRows(w, format, []string{"Date", "Weekday"}, rows)
}
