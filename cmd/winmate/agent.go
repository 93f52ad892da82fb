package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"winmate/internal/monitor"
	"winmate/internal/server"
	"winmate/pkg/ports"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the background agent (resource monitor + HTTP API)",
	Long: `Watches CPU, memory and disk usage and raises alerts when they cross the
configured thresholds, while also serving the HTTP API. Alerts are logged
and recorded in the journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		notify := ports.NotifierFunc(func(ctx context.Context, title, message string) error {
			app.Logger.Warn("resource alert", "title", title, "message", message)
			return app.Journal.Event(ctx, fmt.Sprintf("ALERT %s: %s", title, message))
		})

		mon := monitor.New(app.Collector.Collect, notify,
			monitor.WithThresholds(app.Config.Monitor.CPUWarnPercent, app.Config.Monitor.RAMWarnPercent, app.Config.Monitor.DiskWarnPercent),
			monitor.WithInterval(app.Config.Monitor.Interval),
			monitor.WithCooldown(app.Config.Monitor.Cooldown),
			monitor.WithLogger(app.Logger),
		)
		go mon.Run(ctx)

		srv := server.New(app.Catalog, app.Router, app.Executor, app.Collector,
			server.WithJournal(app.Journal),
			server.WithUpdater(app.Updater),
			server.WithGatherer(app.Registry),
			server.WithLogger(app.Logger),
		)

		httpServer := &http.Server{
			Addr:    app.Config.Server.Addr,
			Handler: srv.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("agent http server listening", "addr", httpServer.Addr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			app.Logger.Info("shutdown started")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				httpServer.Close()
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
