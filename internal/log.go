package internal

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps the LOG_LEVEL names onto logrus levels. Unknown names fall back to info.
func ParseLevel(levelStr string) logrus.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "ERROR":
		return logrus.ErrorLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "INFO":
		return logrus.InfoLevel
	case "DEBUG":
		return logrus.DebugLevel
	case "TRACE":
		return logrus.TraceLevel
	}
	return logrus.InfoLevel
}

// NewLogger creates a text logger writing to w at the given level
func NewLogger(w io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// NewDefaultLogger creates a stderr logger based on the LOG_LEVEL environment variable
func NewDefaultLogger() *logrus.Logger {
	return NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"))
}

// NewNopLogger returns a logger that discards everything, for tests
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
