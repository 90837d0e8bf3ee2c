package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Debug mode lowers the level so that
// per-request storage chatter shows up during development.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
