// Package logger emits optional diagnostics for stacval runs. The
// --verbose flag turns it on; schema resolution, fetch activity and
// crawl progress then go to stderr while reports stay on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	out     io.Writer = os.Stderr
)

// SetVerbose toggles diagnostic output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether diagnostics are enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects diagnostics away from os.Stderr, primarily for
// tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func emit(tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(out, tag+format+"\n", args...)
}

// Debug records fine-grained steps: cache hits, derived endpoints,
// per-schema check results.
func Debug(format string, args ...any) {
	emit("[DEBUG] ", format, args...)
}

// Info records run milestones such as crawl start and finish.
func Info(format string, args ...any) {
	emit("[INFO] ", format, args...)
}

// Warn records recoverable trouble: unreachable schemas, cache read
// and write failures.
func Warn(format string, args ...any) {
	emit("[WARN] ", format, args...)
}

// Section marks the start of a run phase, e.g. the crawl.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(out, "\n=== %s ===\n", name)
	}
}
