// Package monitor watches CPU, memory and disk usage in the background and
// raises notifications when thresholds are crossed. Each alert kind has its
// own cooldown so a sustained spike does not flood the user.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"winmate/internal/sysinfo"
	"winmate/pkg/ports"
)

// Default thresholds and timings.
const (
	DefaultCPUWarn  = 90.0
	DefaultRAMWarn  = 90.0
	DefaultDiskWarn = 95.0
	DefaultInterval = time.Minute
	DefaultCooldown = 5 * time.Minute
)

// SnapshotFunc supplies health snapshots to the monitor.
type SnapshotFunc func(ctx context.Context) sysinfo.Snapshot

// Monitor periodically samples system health and notifies on sustained
// pressure.
type Monitor struct {
	snapshot SnapshotFunc
	notifier ports.Notifier
	logger   *slog.Logger

	cpuWarn  float64
	ramWarn  float64
	diskWarn float64
	interval time.Duration
	cooldown time.Duration

	now      func() time.Time
	lastCPU  time.Time
	lastRAM  time.Time
	lastDisk time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThresholds overrides the CPU, RAM and disk warning thresholds.
func WithThresholds(cpu, ram, disk float64) Option {
	return func(m *Monitor) {
		m.cpuWarn = cpu
		m.ramWarn = ram
		m.diskWarn = disk
	}
}

// WithInterval sets the sampling interval.
func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) { m.interval = interval }
}

// WithCooldown sets the minimum time between notifications of the same kind.
func WithCooldown(cooldown time.Duration) Option {
	return func(m *Monitor) { m.cooldown = cooldown }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New creates a Monitor.
func New(snapshot SnapshotFunc, notifier ports.Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		snapshot: snapshot,
		notifier: notifier,
		logger:   slog.Default(),
		cpuWarn:  DefaultCPUWarn,
		ramWarn:  DefaultRAMWarn,
		diskWarn: DefaultDiskWarn,
		interval: DefaultInterval,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run samples until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("health monitor started",
		"interval", m.interval, "cpu_warn", m.cpuWarn, "ram_warn", m.ramWarn, "disk_warn", m.diskWarn)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("health monitor stopped")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check samples once and raises any due notifications.
func (m *Monitor) Check(ctx context.Context) {
	snap := m.snapshot(ctx)
	now := m.now()

	if snap.CPUPercent >= m.cpuWarn && now.Sub(m.lastCPU) >= m.cooldown {
		m.lastCPU = now
		m.notify(ctx, "High CPU Usage", fmt.Sprintf(
			"High CPU usage detected: %.1f%%.\n\n"+
				"Consider running a full health check or closing heavy applications.",
			snap.CPUPercent))
	}

	if snap.RAMPercent >= m.ramWarn && now.Sub(m.lastRAM) >= m.cooldown {
		m.lastRAM = now
		m.notify(ctx, "High Memory Usage", fmt.Sprintf(
			"High memory usage detected: %.1f%%.\n\n"+
				"Consider closing unused applications or restarting the system.",
			snap.RAMPercent))
	}

	if worst, ok := snap.WorstDisk(); ok && worst.PercentUsed >= m.diskWarn && now.Sub(m.lastDisk) >= m.cooldown {
		m.lastDisk = now
		m.notify(ctx, "Low Disk Space", fmt.Sprintf(
			"Low disk space detected on %s (%s).\n\n"+
				"Used: %.1f/%.1f GB (%.1f%% used).\n\n"+
				"Consider running a recommended cleanup or freeing up space manually.",
			worst.Device, worst.Mountpoint, worst.UsedGB, worst.TotalGB, worst.PercentUsed))
	}
}

func (m *Monitor) notify(ctx context.Context, title, message string) {
	m.logger.Warn("health alert", "title", title)
	if err := m.notifier.Notify(ctx, title, message); err != nil {
		m.logger.Error("failed to deliver health alert", "title", title, "err", err)
	}
}
