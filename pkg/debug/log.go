// Package debug carries sitekit's diagnostic logging. Nothing is written
// until EnableLogging or SetLogger is called.
package debug

import (
	"fmt"

	"github.com/recera/sitekit/pkg/reactive"
	"github.com/recera/sitekit/pkg/scheduler"
)

var logFn func(args ...interface{})

// SetLogger installs fn as the log sink. A nil fn disables logging.
func SetLogger(fn func(args ...interface{})) {
	logFn = fn
}

// Enabled reports whether a sink is installed
func Enabled() bool {
	return logFn != nil
}

// EnableLogging routes debug output to the platform sink and turns on
// scheduler and reactive tracing
func EnableLogging() {
	logFn = platformLog

	scheduler.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
}

// Log logs a message
func Log(args ...interface{}) {
	if logFn != nil {
		logFn(args...)
	}
}

// Logf logs a formatted message
func Logf(format string, args ...interface{}) {
	if logFn != nil {
		logFn(fmt.Sprintf(format, args...))
	}
}
