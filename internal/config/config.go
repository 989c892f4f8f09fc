package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

// Config holds user preferences
type Config struct {
	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	// Generation service
	APIKey         string        `yaml:"api_key,omitempty" json:"-"`
	Model          string        `yaml:"model" json:"model"`
	APIBaseURL     string        `yaml:"api_base_url" json:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
	QuizQuestions  int           `yaml:"quiz_questions" json:"quiz_questions"`

	// Zen game pacing
	MatchDelay    time.Duration `yaml:"match_delay" json:"match_delay"`
	MismatchDelay time.Duration `yaml:"mismatch_delay" json:"mismatch_delay"`

	// Ambient sound
	AudioEnabled bool     `yaml:"audio_enabled" json:"audio_enabled"`
	AudioCommand []string `yaml:"audio_command" json:"audio_command"` // URL is appended
}

// Dir returns ~/.digicafe
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".digicafe"), nil
}

// Path returns the location of config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "digicafe.log")
	}

	return &Config{
		LogLevel:       "INFO",
		LogFile:        logPath,
		LogConsole:     false,
		Model:          DefaultModel,
		APIBaseURL:     DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
		QuizQuestions:  5,
		MatchDelay:     500 * time.Millisecond,
		MismatchDelay:  1000 * time.Millisecond,
		AudioEnabled:   true,
		AudioCommand:   []string{"mpv", "--no-video", "--really-quiet", "--loop=inf"},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ApplyEnv overlays environment variables on top of the current settings
func (c *Config) ApplyEnv() {
	c.LogLevel = getEnv("DIGICAFE_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("DIGICAFE_LOG_FILE", c.LogFile)
	if v := os.Getenv("DIGICAFE_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}
	c.Model = getEnv("DIGICAFE_MODEL", c.Model)
	c.APIBaseURL = getEnv("DIGICAFE_API_BASE_URL", c.APIBaseURL)
	c.APIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", c.APIKey))
}

// Load loads config from ~/.digicafe/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path, falling back to defaults when it does not exist
func LoadFile(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile reads the settings stored at path over the defaults, without the
// environment overlay. Use it when the result is written back.
func ReadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

// Validate rejects settings the state machines cannot run with
func (c *Config) Validate() error {
	if c.QuizQuestions <= 0 {
		return fmt.Errorf("quiz_questions must be positive, got %d", c.QuizQuestions)
	}
	if c.MatchDelay <= 0 || c.MismatchDelay <= 0 {
		return fmt.Errorf("match_delay and mismatch_delay must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	return nil
}

// Save saves config to ~/.digicafe/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path. The file holds the API key, so it is 0600.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
