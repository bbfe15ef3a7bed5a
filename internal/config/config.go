package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvProduction marks a server/headless deployment. Browser-backed scraping
// is disabled in this mode because there is no display to show a login
// window on.
const EnvProduction = "production"

// Supported classifier providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config holds all application configuration.
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Scraping    ScrapingConfig `toml:"scraping"`
	Classify    ClassifyConfig `toml:"classify"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ScrapingConfig configures the scraping layer.
type ScrapingConfig struct {
	// SessionsDir overrides where browser profiles are kept. Empty means
	// the default under the config directory.
	SessionsDir string `toml:"sessions_dir"`
	// YtDlpPath overrides the yt-dlp binary looked up on PATH.
	YtDlpPath string `toml:"yt_dlp_path"`
}

// ClassifyConfig configures the LLM classifier.
type ClassifyConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	MaxTokens      int    `toml:"max_tokens"`
	CacheExchanges bool   `toml:"cache_exchanges"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Environment: "desktop",
		Server: ServerConfig{
			Addr: ":8000",
		},
		Scraping: ScrapingConfig{
			YtDlpPath: "yt-dlp",
		},
		Classify: ClassifyConfig{
			Provider:       ProviderAnthropic,
			Model:          "claude-sonnet-4-20250514",
			MaxTokens:      2048,
			CacheExchanges: false,
		},
	}
}

// ServerMode reports whether browser-backed scraping must be refused.
func (c *Config) ServerMode() bool {
	return c.Environment == EnvProduction
}

// ApplyEnv overlays environment variables on top of the file config. API
// keys are environment-only so they never land in config.toml.
func (c *Config) ApplyEnv() {
	if env := os.Getenv("CLAIMSIFT_ENV"); env != "" {
		c.Environment = env
	} else if env := os.Getenv("ENVIRONMENT"); env != "" {
		c.Environment = env
	}

	switch c.Classify.Provider {
	case ProviderAnthropic:
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			c.Classify.APIKey = key
		}
	case ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.Classify.APIKey = key
		}
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claimsift"), nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claimsift"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from disk.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
