package app

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/pkg/logging"
)

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// NewLogger builds the application logger and installs it as the process
// default. The level comes from, in order: --log-level (or
// LOCALLIFT_LOG_LEVEL), --quiet, --verbose, then info.
func NewLogger(config *Config) zerolog.Logger {
	level, problem := determineLogLevel(config)

	logger := *logging.Configure(&logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogOutput,
		LogFile:    config.LogFile,
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
	if problem != "" {
		logger.Warn().Str("level", level).Msg(problem)
	}
	return logger
}

// determineLogLevel picks the level and explains any flag it had to ignore.
func determineLogLevel(config *Config) (level, problem string) {
	switch {
	case config.LogLevel != "" && logLevels[config.LogLevel]:
		return config.LogLevel, ""
	case config.LogLevel != "":
		return "info", "Unknown log level " + config.LogLevel + ", using info"
	case config.Quiet && config.Verbose:
		return "warn", "Both --verbose and --quiet given, using --quiet"
	case config.Quiet:
		return "warn", ""
	case config.Verbose:
		return "debug", ""
	default:
		return "info", ""
	}
}
