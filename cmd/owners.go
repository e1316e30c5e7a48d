package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet-validator/internal/logparse"
	"github.com/Tiliavir/timesheet-validator/internal/validate"
)

var ownersFormat string

var ownersCmd = &cobra.Command{
	Use:   "owners <file.xlsx>",
	Short: "List the owners in a time log with their total hours",
	Args:  cobra.ExactArgs(1),
	RunE:  runOwners,
}

func init() {
	ownersCmd.Flags().StringVar(&ownersFormat, "format", formatTable, "Output format: table, csv, json")
}

func runOwners(cmd *cobra.Command, args []string) error {
	if err := checkFormat(ownersFormat); err != nil {
		fail(1, err)
	}

	e := setup()
	defer e.close()

	grid, err := logparse.OpenWorkbook(args[0], e.cfg.Sheet)
	if err != nil {
		fail(2, err)
	}
	entries, err := logparse.Parse(grid)
	if err != nil {
		fail(2, err)
	}

	if err := writeTotals(cmd.OutOrStdout(), ownersFormat, validate.OwnerTotals(entries, time.Time{})); err != nil {
		fail(2, err)
	}
	return nil
}
