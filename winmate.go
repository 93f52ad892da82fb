// Package winmate is the high-level entry point for the maintenance
// assistant. It assembles the action catalog, the request router, the
// executor and the supporting adapters from configuration, so the CLI, HTTP
// and MCP surfaces share one wiring path.
package winmate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"winmate/internal/actions"
	"winmate/internal/adapters/gemini"
	"winmate/internal/adapters/journal"
	"winmate/internal/config"
	"winmate/internal/logging"
	"winmate/internal/metrics"
	"winmate/internal/privacy"
	"winmate/internal/sysinfo"
	"winmate/internal/updater"
	"winmate/pkg/catalog"
	"winmate/pkg/executor"
	"winmate/pkg/ports"
	"winmate/pkg/router"
)

// Version is the application version. Bump it when shipping a new build.
const Version = "1.0.0"

// App bundles the assembled application core.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Catalog   *catalog.Catalog
	Router    *router.Router
	Executor  *executor.Executor
	Journal   ports.Journal
	Collector *sysinfo.Collector
	Updater   *updater.Updater
	Registry  *prometheus.Registry
}

// Option configures the App assembly.
type Option func(*App)

// WithLogger overrides the configured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.Logger = logger }
}

// WithJournal overrides the configured journal backend.
func WithJournal(j ports.Journal) Option {
	return func(a *App) { a.Journal = j }
}

// New assembles the application from configuration.
func New(cfg config.Config, opts ...Option) (*App, error) {
	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	if app.Logger == nil {
		app.Logger = logging.New(parseLevel(cfg.LogLevel))
	}

	if app.Journal == nil {
		j, err := newJournal(cfg.Journal)
		if err != nil {
			return nil, err
		}
		app.Journal = j
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	actionMetrics := metrics.New(app.Registry)

	app.Catalog = catalog.New(app.Logger)

	tools := actions.NewTools(actions.WithToolsLogger(app.Logger))
	privacyEngine := privacy.NewEngine(privacy.NewSystemRegistry(),
		privacy.WithLogger(app.Logger))
	actions.RegisterBuiltins(app.Catalog, tools, privacyEngine)

	if cfg.ExtensionsDir != "" {
		n := catalog.LoadExtensions(cfg.ExtensionsDir, app.Catalog, app.Logger)
		if n > 0 {
			app.Logger.Info("loaded extension actions", "count", n, "dir", cfg.ExtensionsDir)
		}
	}

	remote := gemini.NewFromEnv(
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithLogger(app.Logger),
	)
	app.Router = router.New(app.Catalog,
		router.WithRemote(remote),
		router.WithLogger(app.Logger),
	)

	app.Executor = executor.New(
		executor.WithJournal(app.Journal),
		executor.WithLogger(app.Logger),
		executor.WithMetrics(actionMetrics),
	)

	app.Collector = sysinfo.NewCollector(sysinfo.WithLogger(app.Logger))
	app.Updater = updater.New(cfg.UpdateFeedURL, Version, updater.WithLogger(app.Logger))

	return app, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Journal != nil {
		return a.Journal.Close()
	}
	return nil
}

func newJournal(cfg config.Journal) (ports.Journal, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "file":
		return journal.NewFile(cfg.Dir), nil
	case "redis":
		return journal.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case "memory":
		return journal.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Backend)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
