package winmate

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/internal/config"
	"winmate/internal/logging"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Journal.Backend = "memory"
	cfg.ExtensionsDir = ""
	return cfg
}

func TestNew_AssemblesCore(t *testing.T) {
	app, err := New(testConfig(), WithLogger(logging.NewNop()))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, 16, app.Catalog.Len(), "all built-in actions should be registered")
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Executor)
	assert.NotNil(t, app.Collector)
	assert.NotNil(t, app.Updater)
	assert.NotNil(t, app.Registry)
}

func TestNew_RouterResolvesBuiltins(t *testing.T) {
	app, err := New(testConfig(), WithLogger(logging.NewNop()))
	require.NoError(t, err)
	defer app.Close()

	plan := app.Router.Resolve(context.Background(), "my wifi is not working")
	require.Len(t, plan, 1)
	assert.Equal(t, "network_reset", plan[0].ID)
}

func TestNew_UnknownJournalBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Journal.Backend = "cassandra"

	_, err := New(cfg, WithLogger(logging.NewNop()))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
