package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// DebugEnabled returns true if debug mode is enabled via POMO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("POMO_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.StandardLogger().Logf(log.InfoLevel, format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		log.StandardLogger().Logln(log.InfoLevel, args...)
	}
}
