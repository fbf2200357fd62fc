//go:build !js
// +build !js

package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	out     io.Writer
	file    *os.File
	mu      sync.Mutex
	enabled bool
)

// Path returns ~/.config/pixel-sonify/debug.log
func Path() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "pixel-sonify", "debug.log")
}

// Enable starts debug logging to Path(), truncating the previous log.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	logPath := Path()
	os.MkdirAll(filepath.Dir(logPath), 0755)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	start(f)
	return nil
}

// EnableWriter sends the log to w instead of the log file.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	start(w)
}

// start must be called with mu held.
func start(w io.Writer) {
	out = w
	enabled = true
	counters = make(map[string]int)
	write("debug", "=== Debug logging started ===")
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	out = nil
	enabled = false
}

// Enabled reports whether messages are being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || out == nil {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

var counters = make(map[string]int)

// LogEvery logs only every N calls (use for per-note events)
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// Logger adapts the debug log to the sequencer's logging interface. Each
// level is written under its own category.
type Logger struct {
	Category string
}

func (l Logger) Debug(args ...interface{}) { l.log("", args) }
func (l Logger) Warn(args ...interface{})  { l.log("warn", args) }
func (l Logger) Error(args ...interface{}) { l.log("error", args) }

func (l Logger) log(level string, args []interface{}) {
	category := l.Category
	if category == "" {
		category = "sonify"
	}
	if level != "" {
		category += "." + level
	}
	Log(category, "%s", strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}
