package journal

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File is a ports.Journal that appends to one log file per day under a base
// directory, e.g. <dir>/2026-09-01.log.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates a daily-file journal rooted at dir. If dir is empty it
// defaults to ".winmate/logs".
func NewFile(dir string) *File {
	if dir == "" {
		dir = filepath.Join(".winmate", "logs")
	}
	return &File{dir: dir}
}

func (f *File) path(now time.Time) string {
	return filepath.Join(f.dir, dayKey(now)+".log")
}

// Event implements ports.Journal.
func (f *File) Event(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("ensure journal directory: %w", err)
	}

	now := time.Now()
	fh, err := os.OpenFile(f.path(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.WriteString(formatEvent(now, message) + "\n"); err != nil {
		return fmt.Errorf("append journal line: %w", err)
	}
	return nil
}

// Action implements ports.Journal.
func (f *File) Action(ctx context.Context, name, status, detail string) error {
	return f.Event(ctx, formatAction(name, status, detail))
}

// Recent implements ports.Journal. It reads today's file only; older days
// stay on disk for manual inspection.
func (f *File) Recent(_ context.Context, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.Open(f.path(time.Now()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer fh.Close()

	var lines []string
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal file: %w", err)
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}

// Close implements ports.Journal.
func (f *File) Close() error { return nil }
