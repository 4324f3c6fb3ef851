// Package config resolves runtime settings from the config file, .env files
// and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment sets a
// value.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "info"
)

// Config holds all runtime settings.
type Config struct {
	// OpenAIKey authenticates against the OpenAI API. Only required for
	// the chat features; browsing works without it.
	OpenAIKey string `yaml:"openai_api_key,omitempty"`
	// Model is the chat model identifier.
	Model string `yaml:"model,omitempty"`
	// TranslateURL overrides the translation service endpoint.
	TranslateURL string `yaml:"translate_url,omitempty" validate:"omitempty,url"`
	// DatasetPath points at an alternative listings file. Empty means the
	// embedded dataset.
	DatasetPath string `yaml:"dataset_path,omitempty"`
	// ListenAddr is the web server bind address.
	ListenAddr string `yaml:"listen_addr,omitempty" validate:"omitempty,hostname_port"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	// DevMode switches logging to human-readable text output.
	DevMode bool `yaml:"dev_mode,omitempty"`
}

var validate = validator.New()

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "homefinder", "config.yaml"), nil
}

// Load resolves the configuration: file, then .env, then environment
// variables. A missing config file is not an error.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	// A .env in the working directory is a developer convenience; ignore
	// its absence.
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// RequireChat verifies that the settings needed for the conversational
// assistant are present.
func (c *Config) RequireChat() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("an OpenAI API key is required for chat: set OPENAI_API_KEY or openai_api_key in the config file")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := os.Getenv("HOMEFINDER_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("HOMEFINDER_TRANSLATE_URL"); v != "" {
		cfg.TranslateURL = v
	}
	if v := os.Getenv("HOMEFINDER_DATA"); v != "" {
		cfg.DatasetPath = v
	}
	if v := os.Getenv("HOMEFINDER_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("HOMEFINDER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HOMEFINDER_DEV"); v != "" {
		cfg.DevMode = v == "true" || v == "1"
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}
