// Package journal provides ports.Journal adapters: an in-memory journal for
// tests, a daily-file journal matching the classic log layout, and a Redis
// journal for installations that centralize agent logs.
package journal

import (
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// formatEvent renders one journal line: "[ts] message".
func formatEvent(now time.Time, message string) string {
	return fmt.Sprintf("[%s] %s", now.Format(timestampLayout), message)
}

// formatAction renders an action-lifecycle message: "ACTION STATUS: name | detail".
func formatAction(name, status, detail string) string {
	msg := fmt.Sprintf("ACTION %s: %s", status, name)
	if detail != "" {
		msg += " | " + detail
	}
	return msg
}

// dayKey returns the daily bucket for a moment, e.g. "2026-09-01".
func dayKey(now time.Time) string {
	return now.Format("2006-01-02")
}
