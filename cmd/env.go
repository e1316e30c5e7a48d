package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Tiliavir/timesheet-validator/internal/config"
	"github.com/Tiliavir/timesheet-validator/internal/holiday"
	"github.com/Tiliavir/timesheet-validator/internal/logging"
	"github.com/Tiliavir/timesheet-validator/internal/pipeline"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

// env bundles the config and logger every command starts from.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

// setup loads the config and opens the logger, exiting with status 2 on
// failure.
func setup() *env {
	cfg, err := config.Load(configPath)
	if err != nil {
		fail(2, err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, closeLog, err := logging.New(level, cfg.Log.File)
	if err != nil {
		fail(2, err)
	}
	return &env{cfg: cfg, logger: logger, closeLog: closeLog}
}

func (e *env) close() {
	if err := e.closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log file:", err)
	}
}

func (e *env) rules() validate.Rules {
	return validate.Rules{MinHours: e.cfg.Rules.MinHours, MaxHours: e.cfg.Rules.MaxHours}
}

// calendar builds the holiday calendar. The public API is skipped when
// offline is set here or in the config.
func (e *env) calendar(ctx context.Context, offline bool) *holiday.Calendar {
	manual, err := holiday.ParseManualTable(e.cfg.Holidays.Manual)
	if err != nil {
		fail(2, fmt.Errorf("config holidays.manual: %w", err))
	}

	var fetcher holiday.Fetcher
	if !offline && !e.cfg.Holidays.Offline {
		fetcher = holiday.NewOpenHolidaysClient(ctx, holiday.ClientOptions{
			BaseURL:  e.cfg.Holidays.APIURL,
			Country:  e.cfg.Holidays.Country,
			Language: e.cfg.Holidays.Language,
			Timeout:  e.cfg.Holidays.Timeout,
			Token:    e.cfg.Holidays.APIToken,
		})
	}
	return holiday.NewCalendar(manual, fetcher, e.logger)
}

func (e *env) runner(cal *holiday.Calendar) *pipeline.Runner {
	return pipeline.NewRunner(cal, e.rules(), e.logger)
}

// fail prints err and exits: 1 for usage errors, 2 for data and I/O errors.
func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
