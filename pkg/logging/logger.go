// Package logging provides structured logging for locallift using zerolog.
// Console output is used when attached to a terminal and JSON otherwise;
// a diagnostic log file can be added next to either.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("location", "Austin, TX").Msg("Searching businesses")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Int("count", 42).Msg("Imported dataset")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variables read by the process-wide default logger. The
// unprefixed names are accepted as fallbacks.
const (
	EnvLevel  = "LOCALLIFT_LOG_LEVEL"
	EnvFormat = "LOCALLIFT_LOG_FORMAT"
	EnvFile   = "LOCALLIFT_LOG_FILE"
)

var defaultLogger = NewLoggerFromConfig(EnvConfig(os.Getenv))

// EnvConfig builds a logger configuration from environment variables.
// DEBUG selects the debug level when no level is set.
func EnvConfig(getenv func(string) string) *Config {
	cfg := DefaultConfig()
	cfg.NoColor = getenv("NO_COLOR") != ""

	if level := firstNonEmpty(getenv(EnvLevel), getenv("LOG_LEVEL")); level != "" {
		cfg.Level = level
	} else if getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := firstNonEmpty(getenv(EnvFormat), getenv("LOG_FORMAT")); format != "" {
		cfg.Format = format
	}
	cfg.LogFile = getenv(EnvFile)
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
