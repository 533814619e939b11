package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger.
// format "json" is meant for log aggregation; anything else prints text.
func Init(level, format string) {
	logrus.SetOutput(os.Stdout)

	if strings.ToLower(format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logrus.Warnf("Unknown log level %q, using info", level)
	}
	logrus.SetLevel(lvl)
}

// WithComponent returns a logger tagged with the emitting component
func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

// WithUser returns a logger carrying the session user
func WithUser(userID string) *logrus.Entry {
	return logrus.WithField("user_id", userID)
}
