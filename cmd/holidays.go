package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet-validator/internal/holiday"
)

var (
	holidaysYear    int
	holidaysOffline bool
	holidaysFormat  string
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Print the resolved holiday calendar",
	Args:  cobra.NoArgs,
	RunE:  runHolidays,
}

func init() {
	holidaysCmd.Flags().IntVar(&holidaysYear, "year", 0, "Calendar year (default current year)")
	holidaysCmd.Flags().BoolVar(&holidaysOffline, "offline", false, "Use the manual table only")
	holidaysCmd.Flags().StringVar(&holidaysFormat, "format", formatTable, "Output format: table, csv, json")
}

func runHolidays(cmd *cobra.Command, args []string) error {
	if err := checkFormat(holidaysFormat); err != nil {
		fail(1, err)
	}
	year := holidaysYear
	if year == 0 {
		year = time.Now().Year()
	}

	e := setup()
	defer e.close()
	ctx := cmd.Context()

	set, err := e.calendar(ctx, holidaysOffline).Resolve(ctx, year)
	if err != nil {
		if errors.Is(err, holiday.ErrYearOutOfRange) {
			fail(1, err)
		}
		fail(2, err)
	}

	if err := writeHolidays(cmd.OutOrStdout(), holidaysFormat, set); err != nil {
		fail(2, err)
	}
	return nil
}
