package raidsync

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging sets up the global default logger with a TextHandler and a
// level driven by the RAIDSYNC_LOG_LEVEL environment variable, defaulting to
// Info. A sync run logs at Warn for positions skipped because a file
// vanished or changed mid-run, and Retry logs at Warn when it gives up on an
// I/O operation; progress and autosave checkpoints are not logged. Callers
// driving a sync should call this once at startup.
func ConfigureLogging() {
	logLevel.Set(slog.LevelInfo)

	switch os.Getenv("RAIDSYNC_LOG_LEVEL") {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel overrides the level configured by ConfigureLogging, e.g. to
// drop to Debug around a single troublesome sync run without restarting.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
