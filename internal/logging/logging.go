// Package logging configures the logrus logger shared by the CLI, the
// practice storefront and the page objects.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr. level is a logrus level name
// (info when empty or unknown); format is "text" or "json".
func New(level, format string) *logrus.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// FromEnv creates a logger from LOG_LEVEL and LOG_FORMAT
func FromEnv(getenv func(string) string) *logrus.Logger {
	return New(getenv("LOG_LEVEL"), getenv("LOG_FORMAT"))
}

// Discard returns a logger that drops everything; used by tests
func Discard() *logrus.Logger {
	return NewWithWriter(io.Discard, "panic", "text")
}
