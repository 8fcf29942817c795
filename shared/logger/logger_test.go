package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"staysync/config"
	"staysync/shared/constant"
	"staysync/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(env, level string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "staysync"
	cfg.Server.Env = env
	cfg.Server.LogLevel = level

	return cfg
}

// capture swaps the global logger for one writing into a buffer and restores it afterwards.
func capture(t *testing.T, env, level string) *bytes.Buffer {
	t.Helper()

	original := log.Logger
	originalLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	var buf bytes.Buffer
	logger.InitLoggerTo(&buf, testConfig(env, level))

	return &buf
}

func TestInitLogger_ProductionWritesJSON(t *testing.T) {
	buf := capture(t, constant.ServerEnvProduction, "info")

	log.Info().Str("listing_id", "listing-1").Msg("calendar exported")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "staysync", line["service"])
	assert.Equal(t, "listing-1", line["listing_id"])
	assert.Equal(t, "calendar exported", line["message"])
	assert.Contains(t, line, "time")
}

func TestInitLogger_DevelopmentIsReadable(t *testing.T) {
	buf := capture(t, constant.ServerEnvDevelopment, "debug")

	log.Debug().Msg("sync scheduled")

	assert.Contains(t, buf.String(), "sync scheduled")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "chatty", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			capture(t, constant.ServerEnvProduction, tt.level)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevel_FiltersBelowLevel(t *testing.T) {
	buf := capture(t, constant.ServerEnvProduction, "warn")

	log.Info().Msg("fetched feed")
	assert.Empty(t, buf.String())

	log.Warn().Msg("feed returned no events")
	assert.Contains(t, buf.String(), "feed returned no events")
}

func TestErrorWithStack(t *testing.T) {
	buf := capture(t, constant.ServerEnvProduction, "info")

	logger.ErrorWithStack(errors.New("upsert blocks: connection reset"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Contains(t, line["message"], "upsert blocks: connection reset")
	// %+v on a stacked error prints the frames
	assert.Contains(t, line["message"], "logger_test.TestErrorWithStack")
}

func TestForChannel(t *testing.T) {
	buf := capture(t, constant.ServerEnvProduction, "info")

	logger.ForChannel("listing-1", "airbnb").Info().Msg("channel synced")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listing-1", line["listing_id"])
	assert.Equal(t, "airbnb", line["channel_id"])
	assert.Equal(t, "staysync", line["service"])
}
