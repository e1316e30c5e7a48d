// Package holiday resolves the set of non-working dates for a year from a
// manual table and a best-effort public holiday source.
package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/logging"
	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

// ErrYearOutOfRange is returned by Resolve for years outside [MinYear, MaxYear].
var ErrYearOutOfRange = errors.New("year out of range")

// Fetcher returns the public holidays of a year from some external source.
type Fetcher interface {
	PublicHolidays(ctx context.Context, year int) ([]time.Time, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, year int) ([]time.Time, error)

func (f FetcherFunc) PublicHolidays(ctx context.Context, year int) ([]time.Time, error) {
	return f(ctx, year)
}

// Calendar merges the manual table with the fetched holidays.
type Calendar struct {
	manual  ManualTable
	fetcher Fetcher
	logger  *slog.Logger
}

// NewCalendar creates a Calendar. A nil fetcher resolves from the manual
// table only; a nil logger discards logs.
func NewCalendar(manual ManualTable, fetcher Fetcher, logger *slog.Logger) *Calendar {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Calendar{manual: manual, fetcher: fetcher, logger: logger}
}

// Resolve returns the deduplicated, ascending holidays of year. A failed
// fetch is logged and treated as an empty result.
func (c *Calendar) Resolve(ctx context.Context, year int) (model.HolidaySet, error) {
	if year < MinYear || year > MaxYear {
		return model.HolidaySet{}, fmt.Errorf("%w: %d (want %d-%d)", ErrYearOutOfRange, year, MinYear, MaxYear)
	}

	manual := c.manual.Dates(year, c.logger)
	fetched := c.fetch(ctx, year)

	set := model.NewHolidaySet(append(manual, fetched...))
	c.logger.Debug("holidays_resolved", "year", year, "manual", len(manual), "fetched", len(fetched), "total", set.Len())
	return set, nil
}

func (c *Calendar) fetch(ctx context.Context, year int) []time.Time {
	if c.fetcher == nil {
		return nil
	}
	dates, err := c.fetcher.PublicHolidays(ctx, year)
	if err != nil {
		c.logger.Warn("holiday_fetch_failed", "year", year, "error", err.Error())
		return nil
	}

	from, to := timecalc.YearRange(year)
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = timecalc.DateOf(d)
		if d.Before(from) || d.After(to) {
			c.logger.Debug("holiday_outside_year_dropped", "year", year, "date", d.Format(timecalc.DateLayout))
			continue
		}
		out = append(out, d)
	}
	return out
}
