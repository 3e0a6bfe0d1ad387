package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger. Handlers and services log
// policy violations at Warn and storage failures at Error.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		Logger.SetLevel(logrus.DebugLevel)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}
}
