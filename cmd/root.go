package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tsheet",
	Short: "tsheet – validate exported timesheet logs",
	Long: `tsheet reads a time log exported as an .xlsx workbook, flags overlapping
entries and checks every business day against the daily hour rules.
Settings live in ~/.tsheet/config.yaml.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tsheet/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(ownersCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(serveCmd)
}
