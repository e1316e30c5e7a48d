package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet-validator/internal/holiday"
	"github.com/Tiliavir/timesheet-validator/internal/logparse"
	"github.com/Tiliavir/timesheet-validator/internal/pipeline"
	"github.com/Tiliavir/timesheet-validator/internal/storage"
)

var (
	validateYear        int
	validateOwner       string
	validateFormat      string
	validateInvalidOnly bool
	validateOffline     bool
	validateOut         string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.xlsx>",
	Short: "Classify every business day of a time log",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&validateYear, "year", 0, "Holiday calendar year (default current year)")
	validateCmd.Flags().StringVar(&validateOwner, "owner", "", "Only validate this owner's entries")
	validateCmd.Flags().StringVar(&validateFormat, "format", formatTable, "Output format: table, csv, json")
	validateCmd.Flags().BoolVar(&validateInvalidOnly, "invalid-only", false, "Show only days that failed validation")
	validateCmd.Flags().BoolVar(&validateOffline, "offline", false, "Skip the public holiday API")
	validateCmd.Flags().StringVar(&validateOut, "out", "", "Also write the full JSON report to this file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := checkFormat(validateFormat); err != nil {
		fail(1, err)
	}

	e := setup()
	defer e.close()
	ctx := cmd.Context()

	grid, err := logparse.OpenWorkbook(args[0], e.cfg.Sheet)
	if err != nil {
		fail(2, err)
	}

	report, err := e.runner(e.calendar(ctx, validateOffline)).Run(ctx, pipeline.Request{
		Grid:  grid,
		Year:  validateYear,
		Owner: validateOwner,
	})
	if err != nil {
		if errors.Is(err, holiday.ErrYearOutOfRange) {
			fail(1, err)
		}
		fail(2, err)
	}

	if validateOut != "" {
		if err := storage.WriteJSON(validateOut, report); err != nil {
			fail(2, err)
		}
	}

	out := cmd.OutOrStdout()
	if validateFormat == formatJSON && !validateInvalidOnly {
		return writeJSON(out, report)
	}

	days := report.Days
	if validateInvalidOnly {
		days = report.Invalid
	}
	if err := writeDays(out, validateFormat, days); err != nil {
		fail(2, err)
	}
	if validateFormat == formatTable {
		fmt.Fprintln(out)
		writeSummary(out, report.Summary)
	}
	return nil
}
