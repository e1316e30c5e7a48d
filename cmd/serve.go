package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet-validator/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validation JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	e := setup()
	defer e.close()
	ctx := cmd.Context()

	addr := serveAddr
	if addr == "" {
		addr = e.cfg.Server.Addr
	}

	cal := e.calendar(ctx, false)
	srv := api.NewServer(e.runner(cal), cal, e.cfg.Sheet, e.logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(os.Stderr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			e.logger.Error("server_shutdown_failed", "error", err.Error())
		}
	}()

	e.logger.Info("api_listening", "addr", addr, "sheet", e.cfg.Sheet)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fail(2, err)
	}
	return nil
}
