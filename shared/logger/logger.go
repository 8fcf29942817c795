package logger

import (
	"io"
	"os"
	"staysync/config"
	"staysync/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes human readable lines in development and JSON everywhere else, so log
// shippers can index listing_id and channel_id.
func InitLogger(cfg *config.Config) {
	InitLoggerTo(os.Stdout, cfg)
}

func InitLoggerTo(out io.Writer, cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.App.Name).
		Logger()

	SetLogLevel(cfg)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// ForChannel returns a child logger tagged with the listing and channel being synced.
func ForChannel(listingID, channelID string) *zerolog.Logger {
	child := log.With().Str("listing_id", listingID).Str("channel_id", channelID).Logger()

	return &child
}

// SetLogLevel applies LOG_LEVEL, falling back to info when it does not parse.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.InfoLevel
		log.Warn().Str("loglevel", cfg.Server.LogLevel).Msg("Unknown log level, using info.")
	}

	zerolog.SetGlobalLevel(level)
}
