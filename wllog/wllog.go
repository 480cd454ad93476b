// Package wllog provides the structured logger used by the protocol core
// and the compositor: a thin package-level wrapper around zerolog, in the
// same shape as a typical small CLI tool's logger package (a package-level
// logger, a SetLevel(string), and forwarding methods for each level).
package wllog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// SetLevel sets the global minimum log level by name. Unrecognized names
// fall back to "info".
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Logger returns the shared zerolog.Logger, for callers that want to attach
// their own fields (e.g. a connection ID) via With().
func Logger() zerolog.Logger { return log }

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
