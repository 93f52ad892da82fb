package actions

import (
	"context"
	"fmt"
	"strings"
)

const outputTail = 2000

// tail returns the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// RunSFC runs "sfc /scannow" and summarizes the result.
func (t *Tools) RunSFC(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	result, err := t.run(ctx, "sfc", "/scannow")
	if err != nil {
		return "", fmt.Errorf("start sfc: %w", err)
	}

	status := "SFC scan completed successfully."
	if result.Code != 0 {
		status = fmt.Sprintf("SFC scan finished with code %d. Check details.", result.Code)
	}
	t.logger.Info("sfc finished", "code", result.Code)

	summary := result.Output()
	if summary == "" {
		summary = status
	}
	return fmt.Sprintf("%s\n\nLast output lines:\n%s", status, tail(summary, outputTail)), nil
}

// RunDISM runs "DISM /Online /Cleanup-Image /RestoreHealth".
func (t *Tools) RunDISM(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	result, err := t.run(ctx, "DISM", "/Online", "/Cleanup-Image", "/RestoreHealth")
	if err != nil {
		return "", fmt.Errorf("start dism: %w", err)
	}

	status := "DISM health scan completed successfully."
	if result.Code != 0 {
		status = fmt.Sprintf("DISM health scan finished with code %d. Check details.", result.Code)
	}
	t.logger.Info("dism finished", "code", result.Code)

	summary := result.Output()
	if summary == "" {
		summary = status
	}
	return fmt.Sprintf("%s\n\nLast output lines:\n%s", status, tail(summary, outputTail)), nil
}

// ScheduleChkdsk starts "chkdsk C: /F /R /X" in a separate console so the
// user can confirm scheduling at next reboot.
func (t *Tools) ScheduleChkdsk(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	const drive = "C:"
	t.logger.Info("scheduling chkdsk", "drive", drive)

	if err := t.launch(ctx, "cmd.exe", "/c", "start", "chkdsk", drive, "/F", "/R", "/X"); err != nil {
		return "", fmt.Errorf("start chkdsk on %s: %w", drive, err)
	}

	return fmt.Sprintf("CHKDSK has been started in a separate console for %s.\n"+
		"If prompted, confirm scheduling at next reboot.", drive), nil
}

// FullHealthCheck runs SFC then DISM, continuing past failures.
func (t *Tools) FullHealthCheck(ctx context.Context) (string, error) {
	steps := []struct {
		name string
		fn   func(context.Context) (string, error)
	}{
		{"sfc scan", t.RunSFC},
		{"dism health scan", t.RunDISM},
	}

	var messages []string
	for _, step := range steps {
		result, err := step.fn(ctx)
		if err != nil {
			messages = append(messages, fmt.Sprintf("%s failed: %v", step.name, err))
			continue
		}
		if result != "" {
			messages = append(messages, result)
		}
	}

	if len(messages) == 0 {
		return "Health checks completed.", nil
	}
	return strings.Join(messages, "\n"), nil
}
