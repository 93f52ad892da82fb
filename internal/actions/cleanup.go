package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// deleteContents removes the files and directories inside path, but not the
// directory itself. Individual failures are logged and skipped.
func (t *Tools) deleteContents(path string) (files, dirs int) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, 0
	}

	for _, entry := range entries {
		target := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := os.RemoveAll(target); err != nil {
				t.logger.Warn("failed to delete directory", "path", target, "err", err)
				continue
			}
			dirs++
		} else {
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				t.logger.Warn("failed to delete file", "path", target, "err", err)
				continue
			}
			files++
		}
	}
	return files, dirs
}

// CleanTempFiles purges the user temp directory and C:\Windows\Temp.
func (t *Tools) CleanTempFiles(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	var paths []string
	userTemp := t.getenv("TEMP")
	if userTemp == "" {
		userTemp = t.getenv("TMP")
	}
	if userTemp != "" {
		paths = append(paths, userTemp)
	}
	paths = append(paths, filepath.Join(t.windir(), "Temp"))

	var totalFiles, totalDirs int
	for _, p := range paths {
		files, dirs := t.deleteContents(p)
		totalFiles += files
		totalDirs += dirs
		t.logger.Info("cleaned temp folder", "path", p, "files", files, "dirs", dirs)
	}

	return fmt.Sprintf("Temp cleanup completed. Removed approximately %d files and %d folders.", totalFiles, totalDirs), nil
}

// CleanPrefetch purges the Windows Prefetch folder.
func (t *Tools) CleanPrefetch(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	dir := filepath.Join(t.windir(), "Prefetch")
	files, dirs := t.deleteContents(dir)
	t.logger.Info("cleaned prefetch folder", "path", dir, "files", files, "dirs", dirs)

	return fmt.Sprintf("Prefetch cleanup completed. Removed approximately %d files and %d folders.", files, dirs), nil
}

// updateServices are stopped before clearing the update cache and restarted
// afterwards.
var updateServices = []string{"wuauserv", "bits", "cryptsvc"}

// CleanWindowsUpdateCache stops the update services, clears
// SoftwareDistribution and catroot2, and restarts the services. Requires
// administrator privileges.
func (t *Tools) CleanWindowsUpdateCache(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	for _, svc := range updateServices {
		if _, err := t.run(ctx, "sc", "stop", svc); err != nil {
			t.logger.Warn("failed to stop service", "service", svc, "err", err)
		}
	}

	sd := filepath.Join(t.windir(), "SoftwareDistribution")
	catroot2 := filepath.Join(t.windir(), "System32", "catroot2")

	sdFiles, sdDirs := t.deleteContents(sd)
	catFiles, catDirs := t.deleteContents(catroot2)
	t.logger.Info("cleaned windows update cache",
		"software_distribution_files", sdFiles, "software_distribution_dirs", sdDirs,
		"catroot2_files", catFiles, "catroot2_dirs", catDirs)

	for _, svc := range updateServices {
		if _, err := t.run(ctx, "sc", "start", svc); err != nil {
			t.logger.Warn("failed to start service", "service", svc, "err", err)
		}
	}

	return "Windows Update cache cleanup completed.\n" +
		"SoftwareDistribution and catroot2 contents were cleared. " +
		"Windows Update services were restarted.", nil
}

// RecommendedCleanup runs the safe cleanup set in sequence. A failing step
// is reported in the summary and does not stop the remaining steps.
func (t *Tools) RecommendedCleanup(ctx context.Context) (string, error) {
	steps := []struct {
		name string
		fn   func(context.Context) (string, error)
	}{
		{"temp cleanup", t.CleanTempFiles},
		{"prefetch cleanup", t.CleanPrefetch},
		{"windows update cache cleanup", t.CleanWindowsUpdateCache},
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
		return "Cleanup completed.", nil
	}
	return strings.Join(messages, "\n"), nil
}
