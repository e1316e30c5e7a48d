// Package pipeline runs one validation of a time log end to end: parse the
// grid, flag overlaps, resolve holidays and classify business days.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/timesheet-validator/internal/logging"
	"github.com/Tiliavir/timesheet-validator/internal/logparse"
	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/overlap"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

// HolidayResolver returns the holidays of a year.
type HolidayResolver interface {
	Resolve(ctx context.Context, year int) (model.HolidaySet, error)
}

// Request describes one validation run.
type Request struct {
	Grid logparse.Grid
	// Year selects the holiday calendar. Zero means the current year.
	Year int
	// Owner restricts the run to one owner. Empty means everyone.
	Owner string
}

// Report is the full result of a run. Entries are the in-scope entries
// with overlap flags; Owners always lists every owner in the log.
type Report struct {
	RunID    string               `json:"run_id"`
	Year     int                  `json:"year"`
	Owner    string               `json:"owner,omitempty"`
	Owners   []string             `json:"owners"`
	Holidays model.HolidaySet     `json:"holidays"`
	Entries  []model.TimeEntry    `json:"entries"`
	Days     []model.DayAggregate `json:"days"`
	Invalid  []model.DayAggregate `json:"invalid"`
	Summary  validate.Summary     `json:"summary"`
	Totals   []model.OwnerTotal   `json:"owner_totals"`
}

// Runner holds the collaborators shared by runs. It keeps no state between
// runs.
type Runner struct {
	holidays HolidayResolver
	rules    validate.Rules
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner creates a Runner. A nil logger discards logs.
func NewRunner(holidays HolidayResolver, rules validate.Rules, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{holidays: holidays, rules: rules, logger: logger, now: time.Now}
}

// Run executes the pipeline. A parse error aborts the run and no partial
// report is returned.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	runID := uuid.NewString()
	log := r.logger.With("run_id", runID)

	year := req.Year
	if year == 0 {
		year = r.now().Year()
	}
	scope := model.Scope{Owner: req.Owner}

	entries, err := logparse.Parse(req.Grid)
	if err != nil {
		log.Error("log_parse_failed", "error", err.Error())
		return Report{}, fmt.Errorf("parsing time log: %w", err)
	}
	log.Info("log_parsed", "rows", len(req.Grid), "entries", len(entries))

	annotated := overlap.Annotate(entries)
	overlapDays := overlap.Days(annotated, scope)

	holidays, err := r.holidays.Resolve(ctx, year)
	if err != nil {
		return Report{}, fmt.Errorf("resolving holidays for %d: %w", year, err)
	}
	log.Info("holidays_resolved", "year", year, "count", holidays.Len())

	days := validate.Classify(annotated, holidays, overlapDays, scope, r.rules)

	scoped := make([]model.TimeEntry, 0, len(annotated))
	for _, e := range annotated {
		if scope.Includes(e) {
			scoped = append(scoped, e)
		}
	}

	report := Report{
		RunID:    runID,
		Year:     year,
		Owner:    req.Owner,
		Owners:   validate.Owners(annotated),
		Holidays: holidays,
		Entries:  scoped,
		Days:     days,
		Invalid:  validate.Invalid(days),
		Summary:  validate.Summarize(days),
		Totals:   validate.OwnerTotals(scoped, time.Time{}),
	}
	log.Info("days_classified", "owner", req.Owner, "days", report.Summary.Registered, "invalid", report.Summary.Invalid)
	return report, nil
}
