package catalog

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/pkg/domain"
)

// recordHandler captures slog records so tests can assert on warnings.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) warnings() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range h.records {
		if r.Level == slog.LevelWarn {
			out = append(out, r)
		}
	}
	return out
}

func noopHandler(ctx context.Context) (string, error) { return "", nil }

func TestCatalog_RegisterAndLookup(t *testing.T) {
	cat := New(slog.New(&recordHandler{}))

	cat.Register(domain.Action{
		ID: "cleanup_temp", Name: "Clean Temp Files", Group: domain.GroupCleanup, Handler: noopHandler,
	})

	action, ok := cat.Lookup("cleanup_temp")
	require.True(t, ok)
	assert.Equal(t, "cleanup_temp", action.ID)
	assert.Equal(t, "Clean Temp Files", action.Name)

	_, ok = cat.Lookup("nope")
	assert.False(t, ok)
}

func TestCatalog_OverwriteReplacesAndWarns(t *testing.T) {
	rec := &recordHandler{}
	cat := New(slog.New(rec))

	cat.Register(domain.Action{ID: "network_reset", Name: "Old Name", Group: domain.GroupNetwork, Handler: noopHandler})
	cat.Register(domain.Action{ID: "network_reset", Name: "Reset Network Stack", Group: domain.GroupNetwork, Handler: noopHandler})

	require.NotEmpty(t, rec.warnings(), "overwrite should emit a warning")

	// Exactly one entry survives, reflecting the new definition.
	all := cat.All()
	count := 0
	for _, a := range all {
		if a.ID == "network_reset" {
			count++
			assert.Equal(t, "Reset Network Stack", a.Name)
		}
	}
	assert.Equal(t, 1, count)
}

func TestCatalog_ListOrdering(t *testing.T) {
	cat := New(slog.New(&recordHandler{}))

	cat.Register(domain.Action{ID: "b", Name: "zeta", Group: domain.GroupTools, Handler: noopHandler})
	cat.Register(domain.Action{ID: "a", Name: "Alpha", Group: domain.GroupTools, Handler: noopHandler})
	cat.Register(domain.Action{ID: "c", Name: "beta", Group: domain.GroupCleanup, Handler: noopHandler})

	byGroup := cat.ByGroup(domain.GroupTools)
	require.Len(t, byGroup, 2)
	assert.Equal(t, "Alpha", byGroup[0].Name)
	assert.Equal(t, "zeta", byGroup[1].Name)

	all := cat.All()
	require.Len(t, all, 3)
	// cleanup group sorts before tools
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)
}

func TestCatalog_Summaries(t *testing.T) {
	cat := New(slog.New(&recordHandler{}))
	cat.Register(domain.Action{
		ID: "health_sfc", Name: "System File Checker (SFC)", Description: "Runs sfc /scannow.",
		Group: domain.GroupHealth, Dangerous: true, Handler: noopHandler,
	})

	summaries := cat.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "health_sfc", summaries[0].ID)
	assert.True(t, summaries[0].Dangerous)
}
