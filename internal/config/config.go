// Package config handles logger setup and machine profile files.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the requested verbosity. Trace enables
// per instruction logging and takes precedence over debug and quiet.
func CreateLogger(debug, quiet, trace bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case trace:
		cfg.Level = log.TraceLevel
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
