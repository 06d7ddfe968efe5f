package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SELLWISE"

// Default values
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultModelName       = "gemini-2.5-flash"
	DefaultRequestTimeout  = "60s"
	DefaultShutdownTimeout = "10s"
)

// envBindings lists every configuration key with the environment variables
// that may supply it, in precedence order.
var envBindings = map[string][]string{
	"server.port":             {"SELLWISE_SERVER_PORT"},
	"server.log_level":        {"SELLWISE_SERVER_LOG_LEVEL"},
	"server.shutdown_timeout": {"SELLWISE_SERVER_SHUTDOWN_TIMEOUT"},
	"llm.gemini_api_key":      {"SELLWISE_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"llm.model_name":          {"SELLWISE_LLM_MODEL_NAME"},
	"llm.request_timeout":     {"SELLWISE_LLM_REQUEST_TIMEOUT"},
}

// Load configuration from environment variables and optionally a config file
// named config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for config.yaml in dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.request_timeout", DefaultRequestTimeout)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
