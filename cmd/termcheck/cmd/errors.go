package cmd

import (
	"fmt"
	"strings"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when a bbolt open fails due to
// lock contention. Readers only hold the lock while a list loads, so a
// lasting lock means another writer is stuck.
func diagnoseDBLock(dbPath string) string {
	return fmt.Sprintf("custom terms database is locked: %s\n", dbPath) +
		"  → another termcheck command is writing to it\n" +
		"  → find the process:  ps aux | grep 'termcheck terms'\n" +
		"  → then retry your command"
}
