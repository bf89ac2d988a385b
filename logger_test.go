package raidsync

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigureLoggingHonorsEnvLevel(t *testing.T) {
	t.Setenv("RAIDSYNC_LOG_LEVEL", "DEBUG")
	ConfigureLogging()
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
}

func TestConfigureLoggingDefaultsToInfo(t *testing.T) {
	os.Unsetenv("RAIDSYNC_LOG_LEVEL")
	ConfigureLogging()
	assert.Equal(t, slog.LevelInfo, logLevel.Level())
}

func TestSetLogLevelOverrides(t *testing.T) {
	ConfigureLogging()
	SetLogLevel(slog.LevelWarn)
	assert.Equal(t, slog.LevelWarn, logLevel.Level())
}
