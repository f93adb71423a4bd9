// Package logger provides structured logging for the CLI using logrus.
// Commands log progress at debug level; the default level only surfaces
// warnings so normal output stays clean.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// L is the shared logger used across the CLI.
var L = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// SetOutput redirects log output, used by tests.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// SetVerbose enables debug-level logging.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(logrus.DebugLevel)
	}
}

// SetLevel parses and applies a level name (debug, info, warn, error).
// Unknown names are ignored and the current level is kept.
func SetLevel(name string) {
	if name == "" {
		return
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		L.WithField("level", name).Warn("unknown log level, keeping current")
		return
	}
	L.SetLevel(lvl)
}

// WithField returns an entry with a single structured field attached.
func WithField(key string, value interface{}) *logrus.Entry {
	return L.WithField(key, value)
}

// WithFields returns an entry with multiple structured fields attached.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return L.WithFields(fields)
}
