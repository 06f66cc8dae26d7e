// Package envcfg reads the module's runtime environment-variable knobs.
// Grounded on xyproto-flapc's use of github.com/xyproto/env/v2 for exactly
// this kind of "a couple of env-var overrides with sane defaults" concern
// (SPEC_FULL.md domain-stack wiring).
package envcfg

import (
	"github.com/xyproto/env/v2"

	"github.com/schemparse/schemparse/internal/log"
)

// ScratchDir returns SCHEMPARSE_SCRATCH_DIR, or def when unset, for
// overriding where Parser extraction directories are created (§5).
func ScratchDir(def string) string {
	return env.Str("SCHEMPARSE_SCRATCH_DIR", def)
}

// LogLevel returns the log.Level named by SCHEMPARSE_LOG_LEVEL
// ("debug"/"info"/"warn"/"error"), defaulting to LevelError.
func LogLevel() log.Level {
	switch env.Str("SCHEMPARSE_LOG_LEVEL", "error") {
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	case "warn":
		return log.LevelWarn
	default:
		return log.LevelError
	}
}

// KeepScratchDir returns SCHEMPARSE_KEEP_SCRATCH as a boolean, defaulting
// to false, for leaving a parse's extraction directory on disk.
func KeepScratchDir() bool {
	return env.Bool("SCHEMPARSE_KEEP_SCRATCH")
}
