package actions

import (
	"context"
	"fmt"
	"path/filepath"
)

// OpenTaskManager launches Windows Task Manager.
func (t *Tools) OpenTaskManager(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	t.logger.Info("opening task manager")
	if err := t.launch(ctx, "taskmgr"); err != nil {
		return "", fmt.Errorf("open task manager: %w", err)
	}
	return "Task Manager opened.", nil
}

// launchMSC opens a management console snap-in through the shell so Windows
// resolves the registered MMC handler.
func (t *Tools) launchMSC(ctx context.Context, name string) error {
	path := filepath.Join(t.windir(), "System32", name)
	return t.launch(ctx, "cmd.exe", "/c", "start", "", path)
}

// OpenDeviceManager launches Windows Device Manager.
func (t *Tools) OpenDeviceManager(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	t.logger.Info("opening device manager")
	if err := t.launchMSC(ctx, "devmgmt.msc"); err != nil {
		return "", fmt.Errorf("open device manager: %w", err)
	}
	return "Device Manager opened.", nil
}

// OpenServices launches the Services management console.
func (t *Tools) OpenServices(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	t.logger.Info("opening services console")
	if err := t.launchMSC(ctx, "services.msc"); err != nil {
		return "", fmt.Errorf("open services console: %w", err)
	}
	return "Services console opened.", nil
}

// OpenSystemRestore launches the System Restore configuration window.
func (t *Tools) OpenSystemRestore(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	t.logger.Info("opening system restore")
	exe := filepath.Join(t.windir(), "System32", "rstrui.exe")
	if err := t.launch(ctx, exe); err != nil {
		return "", fmt.Errorf("open system restore: %w", err)
	}
	return "System Restore UI opened.", nil
}
