package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "LOCALLIFT"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Output  string

	// Config file
	ConfigFile string

	// Catalog and sources
	DataFile        string
	DatasetFile     string
	CredentialsFile string
	AutoImportCity  string
	AutoImportLimit int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by the root command)
// 2. Environment variables (LOCALLIFT_*)
// 3. .env files
// 4. Config file (~/.locallift.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	dataDir := constants.DefaultDataDir
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, constants.DefaultDataDir)
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".locallift")
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	}

	v.SetDefault("data_file", filepath.Join(dataDir, constants.DefaultCatalogFile))
	v.SetDefault("credentials_file", filepath.Join(dataDir, constants.DefaultCredentialsFile))
	v.SetDefault("log_file", filepath.Join(dataDir, constants.DefaultLogFile))
	v.SetDefault("dataset_file", "")
	v.SetDefault("auto_import_city", constants.AutoImportCity)
	v.SetDefault("auto_import_limit", constants.AutoImportLimit)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.NewConfigError("app", "failed to read config file", err)
		}
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		Output:     v.GetString("output"),
		ConfigFile: v.ConfigFileUsed(),

		DataFile:        v.GetString("data_file"),
		DatasetFile:     v.GetString("dataset_file"),
		CredentialsFile: v.GetString("credentials_file"),
		AutoImportCity:  v.GetString("auto_import_city"),
		AutoImportLimit: v.GetInt("auto_import_limit"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
		LogFile:   v.GetString("log_file"),
	}
	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
