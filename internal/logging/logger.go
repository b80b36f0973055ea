// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "PASSSTORE_LOG_LEVEL"

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, pterm.LogLevelInfo)
)

// newLogger writes to w so stdout stays reserved for secrets and listings.
func newLogger(w io.Writer, level pterm.LogLevel) *pterm.Logger {
	return pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(level).
		WithTime(false)
}

// L returns the process-wide logger.
func L() *pterm.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Configure sets the log level from raw (trace, debug, info, warn, error,
// off). EnvLogLevel wins over raw when set. Unknown values keep info.
func Configure(raw string) {
	if env, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		SetOutput(os.Stderr, env)
		return
	}
	level, ok := ParseLevel(raw)
	if !ok {
		level = pterm.LogLevelInfo
	}
	SetOutput(os.Stderr, level)
}

// SetOutput replaces the logger's writer and level. Tests use it to capture
// log output.
func SetOutput(w io.Writer, level pterm.LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, level)
}

// ParseLevel maps a level name to a pterm level.
func ParseLevel(raw string) (pterm.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return pterm.LogLevelInfo, false
	case "trace":
		return pterm.LogLevelTrace, true
	case "debug":
		return pterm.LogLevelDebug, true
	case "info":
		return pterm.LogLevelInfo, true
	case "warn", "warning":
		return pterm.LogLevelWarn, true
	case "error":
		return pterm.LogLevelError, true
	case "disabled", "disable", "off", "none":
		return pterm.LogLevelDisabled, true
	default:
		return pterm.LogLevelInfo, false
	}
}
