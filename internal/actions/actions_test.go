package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/internal/logging"
	"winmate/pkg/catalog"
	"winmate/pkg/domain"
)

// fakeShell records commands and serves canned results.
type fakeShell struct {
	commands []string
	launched []string
	results  map[string]CommandResult
	errors   map[string]error
}

func newFakeShell() *fakeShell {
	return &fakeShell{
		results: map[string]CommandResult{},
		errors:  map[string]error{},
	}
}

func (f *fakeShell) run(_ context.Context, name string, args ...string) (CommandResult, error) {
	label := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, label)
	if err, ok := f.errors[name]; ok {
		return CommandResult{}, err
	}
	if result, ok := f.results[name]; ok {
		return result, nil
	}
	return CommandResult{}, nil
}

func (f *fakeShell) launch(_ context.Context, name string, args ...string) error {
	label := strings.Join(append([]string{name}, args...), " ")
	f.launched = append(f.launched, label)
	if err, ok := f.errors[name]; ok {
		return err
	}
	return nil
}

func newTestTools(t *testing.T, shell *fakeShell, env map[string]string) *Tools {
	t.Helper()
	return NewTools(
		WithRunner(shell.run),
		WithLauncher(shell.launch),
		WithEnv(func(key string) string { return env[key] }),
		WithPlatform(true),
		WithToolsLogger(logging.NewNop()),
	)
}

func seedFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestCleanTempFiles_CountsRemovals(t *testing.T) {
	userTemp := t.TempDir()
	windir := t.TempDir()
	winTemp := filepath.Join(windir, "Temp")
	require.NoError(t, os.MkdirAll(winTemp, 0o755))

	seedFiles(t, userTemp, "a.tmp", "b.tmp")
	require.NoError(t, os.MkdirAll(filepath.Join(userTemp, "nested"), 0o755))
	seedFiles(t, winTemp, "c.tmp")

	tools := newTestTools(t, newFakeShell(), map[string]string{"TEMP": userTemp, "WINDIR": windir})

	summary, err := tools.CleanTempFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Temp cleanup completed. Removed approximately 3 files and 1 folders.", summary)

	remaining, err := os.ReadDir(userTemp)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCleanPrefetch(t *testing.T) {
	windir := t.TempDir()
	prefetch := filepath.Join(windir, "Prefetch")
	require.NoError(t, os.MkdirAll(prefetch, 0o755))
	seedFiles(t, prefetch, "APP.pf", "OTHER.pf")

	tools := newTestTools(t, newFakeShell(), map[string]string{"WINDIR": windir})

	summary, err := tools.CleanPrefetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "Removed approximately 2 files")
}

func TestCleanWindowsUpdateCache_CyclesServices(t *testing.T) {
	windir := t.TempDir()
	shell := newFakeShell()
	tools := newTestTools(t, shell, map[string]string{"WINDIR": windir})

	summary, err := tools.CleanWindowsUpdateCache(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "SoftwareDistribution and catroot2 contents were cleared.")

	want := []string{
		"sc stop wuauserv", "sc stop bits", "sc stop cryptsvc",
		"sc start wuauserv", "sc start bits", "sc start cryptsvc",
	}
	assert.Equal(t, want, shell.commands)
}

func TestRecommendedCleanup_ContinuesPastFailure(t *testing.T) {
	// Non-Windows platform makes every step fail; the aggregate must still
	// report all three steps instead of aborting on the first.
	tools := NewTools(
		WithPlatform(false),
		WithToolsLogger(logging.NewNop()),
	)

	summary, err := tools.RecommendedCleanup(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "temp cleanup failed:")
	assert.Contains(t, summary, "prefetch cleanup failed:")
	assert.Contains(t, summary, "windows update cache cleanup failed:")
}

func TestRunSFC_StatusByExitCode(t *testing.T) {
	shell := newFakeShell()
	shell.results["sfc"] = CommandResult{Code: 0, Stdout: "Verification 100% complete."}
	tools := newTestTools(t, shell, nil)

	summary, err := tools.RunSFC(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "SFC scan completed successfully.")
	assert.Contains(t, summary, "Verification 100% complete.")

	shell.results["sfc"] = CommandResult{Code: 2, Stderr: "access denied"}
	summary, err = tools.RunSFC(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "SFC scan finished with code 2.")
	assert.Contains(t, summary, "access denied")
}

func TestRunDISM_StartFailureIsError(t *testing.T) {
	shell := newFakeShell()
	shell.errors["DISM"] = errors.New("executable not found")
	tools := newTestTools(t, shell, nil)

	_, err := tools.RunDISM(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable not found")
}

func TestFullHealthCheck_ContinuesPastFailure(t *testing.T) {
	shell := newFakeShell()
	shell.errors["sfc"] = errors.New("sfc missing")
	shell.results["DISM"] = CommandResult{Code: 0, Stdout: "The restore operation completed successfully."}
	tools := newTestTools(t, shell, nil)

	summary, err := tools.FullHealthCheck(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "sfc scan failed:")
	assert.Contains(t, summary, "The restore operation completed successfully.")
}

func TestScheduleChkdsk_LaunchesConsole(t *testing.T) {
	shell := newFakeShell()
	tools := newTestTools(t, shell, nil)

	summary, err := tools.ScheduleChkdsk(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "CHKDSK has been started in a separate console for C:")

	require.Len(t, shell.launched, 1)
	assert.Contains(t, shell.launched[0], "chkdsk C: /F /R /X")
}

func TestResetNetworkStack_ReportsEveryCommand(t *testing.T) {
	shell := newFakeShell()
	shell.results["netsh"] = CommandResult{Code: 0, Stdout: "Sucessfully reset the Winsock Catalog."}
	shell.errors["ipconfig"] = errors.New("not found")
	tools := newTestTools(t, shell, nil)

	summary, err := tools.ResetNetworkStack(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "Network reset sequence completed.")
	assert.Contains(t, summary, "netsh winsock reset (rc=0)")
	assert.Contains(t, summary, "netsh int ip reset (rc=0)")
	assert.Contains(t, summary, "ipconfig /flushdns: ERROR - not found")
}

func TestUnsupportedPlatform(t *testing.T) {
	tools := NewTools(WithPlatform(false), WithToolsLogger(logging.NewNop()))

	handlers := map[string]func(context.Context) (string, error){
		"CleanTempFiles":    tools.CleanTempFiles,
		"ResetNetworkStack": tools.ResetNetworkStack,
		"OpenTaskManager":   tools.OpenTaskManager,
		"RunSFC":            tools.RunSFC,
	}
	for name, fn := range handlers {
		_, err := fn(context.Background())
		assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform, name)
	}
}

type fakePrivacy struct{}

func (fakePrivacy) ApplyRecommended(context.Context) (string, error) { return "recommended", nil }
func (fakePrivacy) ApplyStrict(context.Context) (string, error)      { return "strict", nil }
func (fakePrivacy) RestoreDefaults(context.Context) (string, error)  { return "defaults", nil }

func TestRegisterBuiltins(t *testing.T) {
	c := catalog.New(logging.NewNop())
	tools := newTestTools(t, newFakeShell(), nil)

	RegisterBuiltins(c, tools, fakePrivacy{})
	assert.Equal(t, 16, c.Len())

	wantDangerous := map[string]bool{
		"cleanup_temp":                 false,
		"cleanup_prefetch":             false,
		"cleanup_windows_update_cache": true,
		"cleanup_recommended":          true,
		"health_sfc":                   true,
		"health_dism":                  true,
		"health_chkdsk":                true,
		"health_full":                  true,
		"network_reset":                true,
		"tools_task_manager":           false,
		"tools_device_manager":         false,
		"tools_services":               false,
		"tools_system_restore":         false,
		"privacy_recommended":          true,
		"privacy_strict":               true,
		"privacy_restore_defaults":     true,
	}
	for id, dangerous := range wantDangerous {
		action, ok := c.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, dangerous, action.Dangerous, fmt.Sprintf("%s dangerous flag", id))
		require.NotNil(t, action.Handler, id)
	}
}

func TestRegisterBuiltins_PrivacyHandlersWired(t *testing.T) {
	c := catalog.New(logging.NewNop())
	RegisterBuiltins(c, newTestTools(t, newFakeShell(), nil), fakePrivacy{})

	action, ok := c.Lookup("privacy_strict")
	require.True(t, ok)
	out, err := action.Handler(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "strict", out)
}
