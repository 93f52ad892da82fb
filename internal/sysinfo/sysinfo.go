// Package sysinfo collects a point-in-time snapshot of host health: OS
// identity, uptime, CPU, memory and per-disk usage. Probes that fail degrade
// to zero values instead of aborting the snapshot.
package sysinfo

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

const gb = 1024 * 1024 * 1024

// DiskInfo describes usage of one mounted filesystem.
type DiskInfo struct {
	Device      string  `json:"device"`
	Mountpoint  string  `json:"mountpoint"`
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	FreeGB      float64 `json:"free_gb"`
	PercentUsed float64 `json:"percent_used"`
}

// Snapshot is a serializable view of current system health.
type Snapshot struct {
	OS            string     `json:"os"`
	OSVersion     string     `json:"os_version"`
	Hostname      string     `json:"hostname"`
	Machine       string     `json:"machine"`
	UptimeSeconds uint64     `json:"uptime_seconds"`
	CPUPercent    float64    `json:"cpu_percent"`
	TotalRAMGB    float64    `json:"total_ram_gb"`
	UsedRAMGB     float64    `json:"used_ram_gb"`
	RAMPercent    float64    `json:"ram_percent"`
	Disks         []DiskInfo `json:"disks"`
}

// WorstDisk returns the disk with the highest usage, or false when no disks
// were observed.
func (s Snapshot) WorstDisk() (DiskInfo, bool) {
	if len(s.Disks) == 0 {
		return DiskInfo{}, false
	}
	worst := s.Disks[0]
	for _, d := range s.Disks[1:] {
		if d.PercentUsed > worst.PercentUsed {
			worst = d
		}
	}
	return worst, true
}

// Collector gathers snapshots.
type Collector struct {
	cpuInterval time.Duration
	logger      *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCPUInterval sets how long the CPU probe samples for.
func WithCPUInterval(interval time.Duration) CollectorOption {
	return func(c *Collector) { c.cpuInterval = interval }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) { c.logger = logger }
}

// NewCollector creates a Collector.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		cpuInterval: 100 * time.Millisecond,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect gathers a snapshot. Individual probe failures are logged and
// leave their fields at zero.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	var snap Snapshot

	if info, err := host.InfoWithContext(ctx); err != nil {
		c.logger.Debug("host probe failed", "err", err)
	} else {
		snap.OS = info.OS
		snap.OSVersion = info.PlatformVersion
		snap.Hostname = info.Hostname
		snap.Machine = info.KernelArch
		snap.UptimeSeconds = info.Uptime
	}

	if percents, err := cpu.PercentWithContext(ctx, c.cpuInterval, false); err != nil {
		c.logger.Debug("cpu probe failed", "err", err)
	} else if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		c.logger.Debug("memory probe failed", "err", err)
	} else {
		snap.TotalRAMGB = float64(vm.Total) / gb
		snap.UsedRAMGB = float64(vm.Total-vm.Available) / gb
		snap.RAMPercent = vm.UsedPercent
	}

	snap.Disks = c.collectDisks(ctx)
	return snap
}

func (c *Collector) collectDisks(ctx context.Context) []DiskInfo {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		c.logger.Debug("disk partitions probe failed", "err", err)
		return nil
	}

	var disks []DiskInfo
	for _, part := range partitions {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			// Some mountpoints are unreadable without elevation.
			c.logger.Debug("disk usage probe failed", "mountpoint", part.Mountpoint, "err", err)
			continue
		}
		disks = append(disks, DiskInfo{
			Device:      part.Device,
			Mountpoint:  part.Mountpoint,
			TotalGB:     float64(usage.Total) / gb,
			UsedGB:      float64(usage.Used) / gb,
			FreeGB:      float64(usage.Free) / gb,
			PercentUsed: usage.UsedPercent,
		})
	}
	return disks
}
