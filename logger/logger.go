package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT ("json" or text).
// Call once from main.
func Init() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence discards all output. Tests use it to keep go test output readable.
func Silence() {
	Log.SetOutput(io.Discard)
}

// For returns an entry tagged with the emitting component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
