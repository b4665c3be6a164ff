package util

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InterruptContext is cancelled on SIGINT or SIGTERM.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// RemoveFiles deletes files, ignoring ones that are already gone.
func RemoveFiles(files []string) {
	for _, f := range files {
		_ = os.Remove(f)
	}
}

// RemoveIfEmpty deletes dir when it has no entries and reports whether it did.
func RemoveIfEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}

	return os.Remove(dir) == nil
}
