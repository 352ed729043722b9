package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/ingester/internal/view"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	EnvAPIURL   = "INGESTER_API_URL"
	EnvLogLevel = "INGESTER_LOG_LEVEL"
)

type Config struct {
	APIURL      string `yaml:"api_url"`
	Timeout     string `yaml:"timeout"`
	Locale      string `yaml:"locale"`
	LogLevel    string `yaml:"log_level"`
	DefaultSort string `yaml:"default_sort,omitempty"`
	DefaultType string `yaml:"default_type,omitempty"`

	// RequestsPerSecond throttles API calls; 0 disables throttling.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// InitialParams returns the view parameters the browser starts with.
func (c *Config) InitialParams() view.Params {
	p := view.DefaultParams()
	if s, err := view.ParseSortKey(c.DefaultSort); err == nil {
		p = p.WithSort(s)
	}
	if t, err := view.ParseTypeFilter(c.DefaultType); err == nil {
		p = p.WithType(t)
	}
	return p
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "ingester", "config.yaml")
}

// LogPath is where the TUI writes its log while it owns the terminal.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "ingester", "ingester.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the YAML config at path (DefaultConfigPath when empty) on top of
// the embedded defaults, then applies .env and environment overrides. api_url
// is left unchecked; see ValidateAPIURL.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: the embedded defaults are enough to run.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// ValidateAPIURL checks that raw is an absolute http or https URL.
func ValidateAPIURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q has no host", raw)
	}
	return nil
}

// validate checks everything except api_url, which is checked by the caller
// once the --api-url flag has been applied on top.
func validate(cfg *Config) error {
	if _, err := view.ParseSortKey(cfg.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if _, err := view.ParseTypeFilter(cfg.DefaultType); err != nil {
		return fmt.Errorf("default_type: %w", err)
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %v", cfg.RequestsPerSecond)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	return nil
}
