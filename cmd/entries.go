package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet-validator/internal/logparse"
	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/overlap"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

var (
	entriesDate   string
	entriesOwner  string
	entriesFormat string
)

var entriesCmd = &cobra.Command{
	Use:   "entries <file.xlsx>",
	Short: "List the entries of one day",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().StringVar(&entriesDate, "date", "", "Day to show (YYYY-MM-DD); defaults to the last day with entries")
	entriesCmd.Flags().StringVar(&entriesOwner, "owner", "", "Only show this owner's entries")
	entriesCmd.Flags().StringVar(&entriesFormat, "format", formatTable, "Output format: table, csv, json")
}

func runEntries(cmd *cobra.Command, args []string) error {
	if err := checkFormat(entriesFormat); err != nil {
		fail(1, err)
	}
	var day time.Time
	if entriesDate != "" {
		d, err := timecalc.ParseDate(entriesDate)
		if err != nil {
			fail(1, err)
		}
		day = d
	}

	e := setup()
	defer e.close()

	grid, err := logparse.OpenWorkbook(args[0], e.cfg.Sheet)
	if err != nil {
		fail(2, err)
	}
	parsed, err := logparse.Parse(grid)
	if err != nil {
		fail(2, err)
	}
	annotated := overlap.Annotate(parsed)
	scope := model.Scope{Owner: entriesOwner}

	if day.IsZero() {
		last, ok := validate.LastDay(annotated, scope)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
			return nil
		}
		day = last
	}

	out := cmd.OutOrStdout()
	entries := validate.EntriesOn(annotated, day, scope)
	if len(entries) == 0 {
		fmt.Fprintf(out, "No entries on %s.\n", day.Format(timecalc.DateLayout))
		return nil
	}

	if entriesFormat == formatTable {
		fmt.Fprintln(out, day.Format(timecalc.DateLayout))
	}
	if err := writeEntries(out, entriesFormat, entries); err != nil {
		fail(2, err)
	}
	if entriesFormat != formatTable {
		return nil
	}
	fmt.Fprintln(out)
	if err := writeTotals(out, entriesFormat, validate.OwnerTotals(entries, day)); err != nil {
		fail(2, err)
	}
	if entriesOwner != "" {
		writeDayStatus(out, validate.DayStatus(entries, day, scope, e.rules()))
	}
	return nil
}
