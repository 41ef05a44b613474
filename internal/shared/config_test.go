package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Source.BaseURL != "https://pitchfork.com" {
			t.Errorf("expected source base URL https://pitchfork.com, got %s", config.Source.BaseURL)
		}

		if config.Source.Pages != 3 {
			t.Errorf("expected 3 listing pages, got %d", config.Source.Pages)
		}

		if len(config.Source.Sections) != 2 {
			t.Errorf("expected 2 sections, got %d", len(config.Source.Sections))
		}

		if config.Catalog.BaseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected catalog base URL https://api.spotify.com/v1, got %s", config.Catalog.BaseURL)
		}

		if config.Output.Format != "json" {
			t.Errorf("expected output format json, got %s", config.Output.Format)
		}

		if config.Credentials.Path != "credentials.json" {
			t.Errorf("expected credentials path credentials.json, got %s", config.Credentials.Path)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		if got := (HTTPConfig{TimeoutSeconds: 30}).Timeout(); got != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", got)
		}

		if got := (HTTPConfig{}).Timeout(); got != 15*time.Second {
			t.Errorf("expected 15s default timeout, got %v", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Source.Pages != DefaultConfig().Source.Pages {
			t.Errorf("created config page count doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Missing File", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
			if !errors.Is(err, ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("Malformed File", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[source\nbase_url = "), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := LoadConfig(configPath)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("Overrides", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			content := `
[source]
base_url = "http://localhost:9999"
sections = ["tracks"]
pages = 5

[output]
format = "csv"
`
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Source.BaseURL != "http://localhost:9999" {
				t.Errorf("expected overridden base URL, got %s", config.Source.BaseURL)
			}
			if config.Source.Pages != 5 {
				t.Errorf("expected 5 pages, got %d", config.Source.Pages)
			}
			if config.Output.Format != "csv" {
				t.Errorf("expected csv format, got %s", config.Output.Format)
			}
		})
	})
}

func TestLoadCredentials(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		content := `{"spotify_credentials": {"CLIENT_ID": "id123", "CLIENT_SECRET": "secret456"}}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		credentials, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if credentials.ClientID != "id123" {
			t.Errorf("expected client id id123, got %s", credentials.ClientID)
		}
		if credentials.ClientSecret != "secret456" {
			t.Errorf("expected client secret secret456, got %s", credentials.ClientSecret)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadCredentials(filepath.Join(t.TempDir(), "credentials.json"))
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		_, err := LoadCredentials(path)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Missing Fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		content := `{"spotify_credentials": {"CLIENT_ID": "id123"}}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		_, err := LoadCredentials(path)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
