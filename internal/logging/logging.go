// Package logging builds the one logger the whole tool shares.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing human-readable lines to stderr. level is a
// logrus level name; unknown or empty values fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
