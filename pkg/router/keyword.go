package router

import "strings"

// keywordActionIDs maps lowercased request text to action ids using an
// ordered substring rule chain. The precedence is deliberate and specified
// by example: more specific phrases win over broader ones, and the generic
// cleanup phrases map to the aggregate recommended cleanup rather than a
// narrow action. Do not reorder without updating the router tests.
func keywordActionIDs(request string) []string {
	text := strings.ToLower(request)

	var selected []string

	containsAny := func(keys ...string) bool {
		for _, k := range keys {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}

	// Cleanup
	switch {
	case containsAny("cleanup", "clean up", "clean my pc", "temp", "cache", "junk", "space"):
		selected = append(selected, "cleanup_recommended")
	case strings.Contains(text, "prefetch"):
		selected = append(selected, "cleanup_prefetch")
	case strings.Contains(text, "windows update") && strings.Contains(text, "cache"):
		selected = append(selected, "cleanup_windows_update_cache")
	case strings.Contains(text, "temp") || strings.Contains(text, "temporary"):
		selected = append(selected, "cleanup_temp")
	}

	// Health
	if containsAny("sfc", "system file checker") {
		selected = append(selected, "health_sfc")
	}
	if containsAny("dism", "component store") {
		selected = append(selected, "health_dism")
	}
	if containsAny("chkdsk", "disk check") {
		selected = append(selected, "health_chkdsk")
	}
	if containsAny("health", "corrupt", "integrity", "fix system files") {
		selected = append(selected, "health_full")
	}

	// Network
	if containsAny("no internet", "network", "wifi", "ethernet", "dns", "winsock", "reset network") {
		selected = append(selected, "network_reset")
	}

	// Tools
	if strings.Contains(text, "task manager") {
		selected = append(selected, "tools_task_manager")
	}
	if strings.Contains(text, "device manager") {
		selected = append(selected, "tools_device_manager")
	}
	if strings.Contains(text, "services") {
		selected = append(selected, "tools_services")
	}
	if containsAny("system restore", "restore point") {
		selected = append(selected, "tools_system_restore")
	}

	// Privacy: strict beats restore beats recommended.
	switch {
	case strings.Contains(text, "privacy") && containsAny("strict", "lock down", "lockdown", "maximum", "paranoid"):
		selected = append(selected, "privacy_strict")
	case strings.Contains(text, "privacy") && containsAny("default", "restore", "undo"):
		selected = append(selected, "privacy_restore_defaults")
	case strings.Contains(text, "privacy"):
		selected = append(selected, "privacy_recommended")
	case containsAny("telemetry", "tracking"):
		selected = append(selected, "privacy_recommended")
	}

	// Generic catch-alls when nothing matched at all.
	if len(selected) == 0 {
		if strings.Contains(text, "clean") {
			selected = append(selected, "cleanup_recommended")
		} else if containsAny("fix", "repair") {
			selected = append(selected, "health_full")
		}
	}

	return selected
}
