// Package config handles configuration loading for askbox.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diogo/askbox/internal/models"
)

// BuildAPIKey is an optional credential baked in at build time with
// -ldflags "-X github.com/diogo/askbox/internal/config.BuildAPIKey=...".
// Local development only.
var BuildAPIKey = ""

// Config represents the user configuration
type Config struct {
	// CredentialURL is the credential provider endpoint the client asks first.
	CredentialURL string `json:"credential_url"`
	// CompletionURL is the chat-completion endpoint.
	CompletionURL string `json:"completion_url"`
	// LocalAPIKey is used when the credential provider cannot be reached.
	LocalAPIKey     string `json:"local_api_key,omitempty"`
	TUITheme        string `json:"tui_theme,omitempty"`      // TUI color theme
	MarkdownStyle   string `json:"markdown_style,omitempty"` // glamour style: dark, light, dracula, notty, ascii
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	LogLevel        string `json:"log_level,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		CredentialURL:   models.DefaultCredentialURL,
		CompletionURL:   models.EndpointCompletion,
		TUITheme:        "tokyonight",
		MarkdownStyle:   "dark",
		CopyToClipboard: false,
		LogLevel:        "info",
	}
}

// FallbackKey returns the local credential, preferring the config file over
// the build-time value. Empty when neither is set.
func FallbackKey(cfg Config) string {
	if cfg.LocalAPIKey != "" {
		return cfg.LocalAPIKey
	}
	return BuildAPIKey
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".askbox"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the config may hold a local API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path of the log file used while the TUI owns the terminal
func GetLogPath() (string, error) {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "askbox.log"), nil
}

// LoadConfig loads the configuration from the default location
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration from path. A missing file yields the
// defaults; a malformed one yields the defaults and an error.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults refills fields an explicit empty string blanked out
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.CredentialURL == "" {
		cfg.CredentialURL = def.CredentialURL
	}
	if cfg.CompletionURL == "" {
		cfg.CompletionURL = def.CompletionURL
	}
	if cfg.TUITheme == "" {
		cfg.TUITheme = def.TUITheme
	}
	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = def.MarkdownStyle
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, "config.json"), cfg)
}

// SaveConfigTo writes the configuration to path
func SaveConfigTo(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0o600: the file may hold a local API key
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
