package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Setup builds the process logger. Components receive entries derived from
// the returned logger through their constructors instead of logging through
// the package-level logrus state.
func Setup(verbosity string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.StampMilli, FullTimestamp: true})

	switch verbosity {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "trace":
		log.SetLevel(logrus.TraceLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
