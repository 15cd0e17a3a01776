// Package config provides configuration loading and validation for the errshape CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default configuration values.
const (
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultOutputFormat = "text"
	DefaultServiceName  = "errshape"
	DefaultFailFast     = false
	DefaultShowDiff     = true

	// FileName is the config file base name searched when no path is given.
	FileName = "errshape"

	// EnvPrefix prefixes environment overrides, e.g. ERRSHAPE_LOGGING_LEVEL.
	EnvPrefix = "ERRSHAPE"
)

// Config holds all configuration for the errshape CLI.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Suite   SuiteConfig   `mapstructure:"suite"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// OutputConfig controls how match outcomes are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// SuiteConfig controls `errshape suite`.
type SuiteConfig struct {
	FailFast bool `mapstructure:"fail_fast"`
	ShowDiff bool `mapstructure:"show_diff"`
}

// TracingConfig holds the service metadata attached to spans and log records
// and the optional OTLP collector spans are exported to.
type TracingConfig struct {
	ServiceName  string            `mapstructure:"service_name"  validate:"required"`
	Environment  string            `mapstructure:"environment"`
	OTLPEndpoint string            `mapstructure:"otlp_endpoint" validate:"omitempty,hostname_port"`
	OTLPInsecure bool              `mapstructure:"otlp_insecure"`
	OTLPHeaders  map[string]string `mapstructure:"otlp_headers"`
}

// SlogLevel maps the configured level name onto a [slog.Level].
func (lc LoggingConfig) SlogLevel() slog.Level {
	switch lc.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// JSON reports whether log records are written as JSON.
func (lc LoggingConfig) JSON() bool {
	return lc.Format == "json"
}

// LoadConfig loads configuration from file and environment variables.
// An empty path searches the working directory and $HOME/.config/errshape
// for errshape.yaml; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(FileName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/errshape")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Output:  OutputConfig{Format: DefaultOutputFormat},
		Suite:   SuiteConfig{FailFast: DefaultFailFast, ShowDiff: DefaultShowDiff},
		Tracing: TracingConfig{ServiceName: DefaultServiceName},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)

	viperCfg.SetDefault("suite.fail_fast", DefaultFailFast)
	viperCfg.SetDefault("suite.show_diff", DefaultShowDiff)

	viperCfg.SetDefault("tracing.service_name", DefaultServiceName)
	viperCfg.SetDefault("tracing.environment", "")
	viperCfg.SetDefault("tracing.otlp_endpoint", "")
	viperCfg.SetDefault("tracing.otlp_insecure", false)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its allowed values. Failures wrap
// [ErrInvalidConfig].
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s=%q fails %s", fe.Namespace(), fe.Value(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}
