package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/internal/logging"
	"winmate/internal/sysinfo"
	"winmate/pkg/ports"
)

type capturedAlert struct {
	title   string
	message string
}

func collectAlerts(alerts *[]capturedAlert) ports.Notifier {
	return ports.NotifierFunc(func(_ context.Context, title, message string) error {
		*alerts = append(*alerts, capturedAlert{title, message})
		return nil
	})
}

func fixedSnapshot(snap sysinfo.Snapshot) SnapshotFunc {
	return func(context.Context) sysinfo.Snapshot { return snap }
}

func TestCheck_AlertsOnThresholds(t *testing.T) {
	snap := sysinfo.Snapshot{
		CPUPercent: 95,
		RAMPercent: 91,
		Disks: []sysinfo.DiskInfo{
			{Device: "C:", Mountpoint: `C:\`, PercentUsed: 96, UsedGB: 230, TotalGB: 240},
		},
	}

	var alerts []capturedAlert
	m := New(fixedSnapshot(snap), collectAlerts(&alerts), WithLogger(logging.NewNop()))

	m.Check(context.Background())

	require.Len(t, alerts, 3)
	assert.Equal(t, "High CPU Usage", alerts[0].title)
	assert.Contains(t, alerts[0].message, "95.0%")
	assert.Equal(t, "High Memory Usage", alerts[1].title)
	assert.Equal(t, "Low Disk Space", alerts[2].title)
	assert.Contains(t, alerts[2].message, "C:")
}

func TestCheck_NoAlertsBelowThresholds(t *testing.T) {
	snap := sysinfo.Snapshot{
		CPUPercent: 89.9,
		RAMPercent: 50,
		Disks:      []sysinfo.DiskInfo{{Device: "C:", PercentUsed: 80}},
	}

	var alerts []capturedAlert
	m := New(fixedSnapshot(snap), collectAlerts(&alerts), WithLogger(logging.NewNop()))

	m.Check(context.Background())
	assert.Empty(t, alerts)
}

func TestCheck_CooldownSuppressesRepeats(t *testing.T) {
	snap := sysinfo.Snapshot{CPUPercent: 99}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var alerts []capturedAlert
	m := New(fixedSnapshot(snap), collectAlerts(&alerts),
		WithLogger(logging.NewNop()),
		WithClock(clock))

	m.Check(context.Background())
	require.Len(t, alerts, 1)

	// Within the cooldown window: suppressed.
	now = now.Add(4 * time.Minute)
	m.Check(context.Background())
	assert.Len(t, alerts, 1)

	// Past the cooldown: fires again.
	now = now.Add(2 * time.Minute)
	m.Check(context.Background())
	assert.Len(t, alerts, 2)
}

func TestCheck_WorstDiskWins(t *testing.T) {
	snap := sysinfo.Snapshot{
		Disks: []sysinfo.DiskInfo{
			{Device: "C:", PercentUsed: 60},
			{Device: "D:", Mountpoint: `D:\`, PercentUsed: 98},
		},
	}

	var alerts []capturedAlert
	m := New(fixedSnapshot(snap), collectAlerts(&alerts), WithLogger(logging.NewNop()))

	m.Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].message, "D:")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	var alerts []capturedAlert
	m := New(fixedSnapshot(sysinfo.Snapshot{CPUPercent: 99}), collectAlerts(&alerts),
		WithLogger(logging.NewNop()),
		WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	assert.NotEmpty(t, alerts)
}
