package shared

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Source      SourceConfig      `toml:"source"`
	Catalog     CatalogConfig     `toml:"catalog"`
	HTTP        HTTPConfig        `toml:"http"`
	Output      OutputConfig      `toml:"output"`
	Credentials CredentialsConfig `toml:"credentials"`
}

// SourceConfig describes the review site whose listing pages are scraped.
type SourceConfig struct {
	BaseURL  string   `toml:"base_url"`
	Sections []string `toml:"sections"`
	Pages    int      `toml:"pages"`
}

// CatalogConfig holds the music catalog API endpoints.
type CatalogConfig struct {
	BaseURL  string `toml:"base_url"`
	TokenURL string `toml:"token_url"`
}

// HTTPConfig bounds outbound requests.
type HTTPConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// OutputConfig controls where and how results are persisted.
type OutputConfig struct {
	Directory string `toml:"directory"`
	Format    string `toml:"format"`
}

// CredentialsConfig points at the JSON credentials file.
type CredentialsConfig struct {
	Path string `toml:"path"`
}

// Timeout returns the configured request timeout as a [time.Duration].
func (c HTTPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SpotifyCredentials holds the client identifier and secret for the catalog API.
type SpotifyCredentials struct {
	ClientID     string `json:"CLIENT_ID"`
	ClientSecret string `json:"CLIENT_SECRET"`
}

type credentialsFile struct {
	Spotify SpotifyCredentials `json:"spotify_credentials"`
}

// LoadCredentials reads the JSON credentials file, a one-time startup read
// with no retries. The file holds a "spotify_credentials" object carrying
// CLIENT_ID and CLIENT_SECRET.
func LoadCredentials(path string) (*SpotifyCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if file.Spotify.ClientID == "" || file.Spotify.ClientSecret == "" {
		return nil, fmt.Errorf("%w: CLIENT_ID and CLIENT_SECRET must be set", ErrInvalidCredentials)
	}

	return &file.Spotify, nil
}
