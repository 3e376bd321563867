package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLogger sets up the info (stdout) and error (stderr) loggers.
// format "json" switches both to JSON output; level applies to InfoLogger.
func InitLogger(format, level string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	ErrorLogger.SetOutput(os.Stderr)

	if strings.EqualFold(format, "json") {
		InfoLogger.SetFormatter(&logrus.JSONFormatter{})
		ErrorLogger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		InfoLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		ErrorLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

func init() {
	// Usable defaults so packages and tests can log before main configures them.
	InitLogger("text", "info")
}
