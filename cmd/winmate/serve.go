package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"winmate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the action catalog, request resolution, execution, system status,
journal and update endpoints over HTTP, plus Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

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
			app.Logger.Info("http server listening", "addr", httpServer.Addr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err
		case sig := <-shutdown:
			app.Logger.Info("shutdown started", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				httpServer.Close()
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
