package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w at the level named by the LOG_LEVEL
// environment variable. Without it only warnings and errors are shown.
func New(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(levelFromEnv())
	return logger
}

// Init returns the process logger, writing to stderr.
func Init() *logrus.Logger {
	return New(os.Stderr)
}

func levelFromEnv() logrus.Level {
	level := logrus.WarnLevel

	if l, ok := os.LookupEnv("LOG_LEVEL"); ok {
		switch l {
		case "dev", "development", "debug":
			level = logrus.DebugLevel
		case "info":
			level = logrus.InfoLevel
		case "warn", "warning":
			level = logrus.WarnLevel
		case "error", "production", "prod":
			level = logrus.ErrorLevel
		}
	}
	return level
}
