package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/diogo/askbox/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CredentialURL != models.DefaultCredentialURL {
		t.Errorf("Expected CredentialURL %q, got %q", models.DefaultCredentialURL, cfg.CredentialURL)
	}
	if cfg.CompletionURL != models.EndpointCompletion {
		t.Errorf("Expected CompletionURL %q, got %q", models.EndpointCompletion, cfg.CompletionURL)
	}
	if cfg.LocalAPIKey != "" {
		t.Errorf("Expected empty LocalAPIKey, got %q", cfg.LocalAPIKey)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("Expected TUITheme 'tokyonight', got %q", cfg.TUITheme)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath() returned relative path: %s", path)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("GetConfigPath() = %s, want config.json", path)
	}
}

func TestLoadConfigFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfigFrom() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfigFrom() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFrom_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, _ := json.Marshal(map[string]any{
		"credential_url":    "http://example.test/credential",
		"local_api_key":     "sk-local",
		"copy_to_clipboard": true,
	})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() returned error: %v", err)
	}
	if cfg.CredentialURL != "http://example.test/credential" {
		t.Errorf("CredentialURL = %s", cfg.CredentialURL)
	}
	if cfg.LocalAPIKey != "sk-local" {
		t.Errorf("LocalAPIKey = %s", cfg.LocalAPIKey)
	}
	if !cfg.CopyToClipboard {
		t.Error("CopyToClipboard should be true")
	}
	// Fields absent from the file keep their defaults
	if cfg.CompletionURL != models.EndpointCompletion {
		t.Errorf("CompletionURL = %s, want default", cfg.CompletionURL)
	}
}

func TestLoadConfigFrom_EmptyStringsRestoreDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"credential_url":"","tui_theme":""}`), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() returned error: %v", err)
	}
	if cfg.CredentialURL != models.DefaultCredentialURL {
		t.Errorf("CredentialURL = %q, want default", cfg.CredentialURL)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("TUITheme = %q, want default", cfg.TUITheme)
	}
}

func TestLoadConfigFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfigFrom(path)
	if err == nil {
		t.Error("Expected parse error for malformed config")
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults on parse error, got %+v", cfg)
	}
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.LocalAPIKey = "sk-saved"

	if err := SaveConfigTo(path, cfg); err != nil {
		t.Fatalf("SaveConfigTo() returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestFallbackKey(t *testing.T) {
	orig := BuildAPIKey
	defer func() { BuildAPIKey = orig }()

	tests := []struct {
		name     string
		local    string
		build    string
		expected string
	}{
		{"neither", "", "", ""},
		{"config only", "sk-config", "", "sk-config"},
		{"build only", "", "sk-build", "sk-build"},
		{"config wins", "sk-config", "sk-build", "sk-config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildAPIKey = tt.build
			cfg := DefaultConfig()
			cfg.LocalAPIKey = tt.local
			if got := FallbackKey(cfg); got != tt.expected {
				t.Errorf("FallbackKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}
