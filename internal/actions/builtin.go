package actions

import (
	"context"

	"winmate/pkg/catalog"
	"winmate/pkg/domain"
)

// PrivacyEngine is the subset of the privacy package the built-in actions
// need. It keeps this package decoupled from the registry implementation.
type PrivacyEngine interface {
	ApplyRecommended(ctx context.Context) (string, error)
	ApplyStrict(ctx context.Context) (string, error)
	RestoreDefaults(ctx context.Context) (string, error)
}

// RegisterBuiltins registers the core actions that ship with the
// application: cleanup, health, network, tools and privacy.
func RegisterBuiltins(reg catalog.Registrar, tools *Tools, privacy PrivacyEngine) {
	reg.Register(domain.Action{
		ID:          "cleanup_temp",
		Name:        "Clean Temp Files",
		Description: "Deletes temporary files from standard Windows temp locations.",
		Group:       domain.GroupCleanup,
		Dangerous:   false,
		Handler:     tools.CleanTempFiles,
	})
	reg.Register(domain.Action{
		ID:          "cleanup_prefetch",
		Name:        "Clean Prefetch Folder",
		Description: "Cleans the Windows Prefetch folder to clear stale launch data.",
		Group:       domain.GroupCleanup,
		Dangerous:   false,
		Handler:     tools.CleanPrefetch,
	})
	reg.Register(domain.Action{
		ID:          "cleanup_windows_update_cache",
		Name:        "Clean Windows Update Cache",
		Description: "Deletes and resets Windows Update cache to fix update issues.",
		Group:       domain.GroupCleanup,
		Dangerous:   true,
		Handler:     tools.CleanWindowsUpdateCache,
	})
	reg.Register(domain.Action{
		ID:          "cleanup_recommended",
		Name:        "Recommended Cleanup",
		Description: "Runs a recommended set of cleanup operations: temp, prefetch, and update cache.",
		Group:       domain.GroupCleanup,
		Dangerous:   true,
		Handler:     tools.RecommendedCleanup,
	})

	reg.Register(domain.Action{
		ID:          "health_sfc",
		Name:        "System File Checker (SFC)",
		Description: "Runs 'sfc /scannow' to check and repair system files.",
		Group:       domain.GroupHealth,
		Dangerous:   true,
		Handler:     tools.RunSFC,
	})
	reg.Register(domain.Action{
		ID:          "health_dism",
		Name:        "DISM Health Scan",
		Description: "Runs DISM to check and repair the Windows component store.",
		Group:       domain.GroupHealth,
		Dangerous:   true,
		Handler:     tools.RunDISM,
	})
	reg.Register(domain.Action{
		ID:          "health_chkdsk",
		Name:        "CHKDSK (Next Boot)",
		Description: "Schedules CHKDSK on the system drive for the next reboot.",
		Group:       domain.GroupHealth,
		Dangerous:   true,
		Handler:     tools.ScheduleChkdsk,
	})
	reg.Register(domain.Action{
		ID:          "health_full",
		Name:        "Full Health Check",
		Description: "Runs SFC and DISM to verify system health. You may still choose to schedule CHKDSK.",
		Group:       domain.GroupHealth,
		Dangerous:   true,
		Handler:     tools.FullHealthCheck,
	})

	reg.Register(domain.Action{
		ID:          "network_reset",
		Name:        "Reset Network Stack",
		Description: "Resets Winsock, IP stack, and flushes DNS to fix common network issues.",
		Group:       domain.GroupNetwork,
		Dangerous:   true,
		Handler:     tools.ResetNetworkStack,
	})

	reg.Register(domain.Action{
		ID:          "tools_task_manager",
		Name:        "Open Task Manager",
		Description: "Opens Windows Task Manager.",
		Group:       domain.GroupTools,
		Dangerous:   false,
		Handler:     tools.OpenTaskManager,
	})
	reg.Register(domain.Action{
		ID:          "tools_device_manager",
		Name:        "Open Device Manager",
		Description: "Opens Windows Device Manager.",
		Group:       domain.GroupTools,
		Dangerous:   false,
		Handler:     tools.OpenDeviceManager,
	})
	reg.Register(domain.Action{
		ID:          "tools_services",
		Name:        "Open Services",
		Description: "Opens the Windows Services management console.",
		Group:       domain.GroupTools,
		Dangerous:   false,
		Handler:     tools.OpenServices,
	})
	reg.Register(domain.Action{
		ID:          "tools_system_restore",
		Name:        "Open System Restore",
		Description: "Opens the System Restore configuration UI.",
		Group:       domain.GroupTools,
		Dangerous:   false,
		Handler:     tools.OpenSystemRestore,
	})

	if privacy != nil {
		reg.Register(domain.Action{
			ID:          "privacy_recommended",
			Name:        "Recommended Privacy Profile",
			Description: "Applies a balanced set of privacy tweaks recommended for most users.",
			Group:       domain.GroupPrivacy,
			Dangerous:   true,
			Handler:     privacy.ApplyRecommended,
		})
		reg.Register(domain.Action{
			ID:          "privacy_strict",
			Name:        "Strict Privacy Profile",
			Description: "Applies a strict set of privacy tweaks, potentially disabling some Windows features.",
			Group:       domain.GroupPrivacy,
			Dangerous:   true,
			Handler:     privacy.ApplyStrict,
		})
		reg.Register(domain.Action{
			ID:          "privacy_restore_defaults",
			Name:        "Restore Privacy Defaults",
			Description: "Restores Windows privacy-related settings to their default values.",
			Group:       domain.GroupPrivacy,
			Dangerous:   true,
			Handler:     privacy.RestoreDefaults,
		})
	}
}
