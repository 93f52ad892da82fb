package journal

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory ports.Journal, used by tests and as a last-resort
// fallback when no durable backend is configured.
type Memory struct {
	mu    sync.Mutex
	lines []string
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Event implements ports.Journal.
func (m *Memory) Event(_ context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, formatEvent(time.Now(), message))
	return nil
}

// Action implements ports.Journal.
func (m *Memory) Action(ctx context.Context, name, status, detail string) error {
	return m.Event(ctx, formatAction(name, status, detail))
}

// Recent implements ports.Journal.
func (m *Memory) Recent(_ context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := 0
	if limit > 0 && len(m.lines) > limit {
		start = len(m.lines) - limit
	}
	out := make([]string, len(m.lines)-start)
	copy(out, m.lines[start:])
	return out, nil
}

// Close implements ports.Journal.
func (m *Memory) Close() error { return nil }
