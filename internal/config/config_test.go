package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheuskafuri/ingester/internal/view"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.APIURL == "" {
		t.Error("expected api_url to be set")
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults do not validate: %v", err)
	}
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &Config{Timeout: "30s"}
	if d := cfg.TimeoutDuration(); d != 30*time.Second {
		t.Errorf("expected 30s, got %v", d)
	}

	cfg.Timeout = "invalid"
	if d := cfg.TimeoutDuration(); d != 10*time.Second {
		t.Errorf("expected 10s default for invalid timeout, got %v", d)
	}

	cfg.Timeout = "-1s"
	if d := cfg.TimeoutDuration(); d != 10*time.Second {
		t.Errorf("expected 10s default for negative timeout, got %v", d)
	}
}

func TestInitialParams(t *testing.T) {
	cfg := &Config{DefaultSort: "title", DefaultType: "resource"}
	p := cfg.InitialParams()
	if p.Sort != view.SortTitle || p.Type != view.TypeResource {
		t.Errorf("InitialParams = %+v", p)
	}

	p = (&Config{}).InitialParams()
	if p.Sort != view.SortDate || p.Type != view.TypeAll {
		t.Errorf("InitialParams defaults = %+v", p)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `api_url: https://archive.example.com
default_sort: title
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://archive.example.com" {
		t.Errorf("expected file api_url, got %s", cfg.APIURL)
	}
	if cfg.DefaultSort != "title" {
		t.Errorf("expected default_sort title, got %s", cfg.DefaultSort)
	}
	// Keys absent from the file keep their embedded defaults.
	if cfg.Timeout != "10s" {
		t.Errorf("expected default timeout 10s, got %q", cfg.Timeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://10.0.0.5:9000")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:9000" {
		t.Errorf("expected env api_url, got %s", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %s", cfg.LogLevel)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("expected default api_url, got %s", cfg.APIURL)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("default_type: video\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("expected error for unknown default_type")
	}
}

func TestValidateAPIURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://api.example.com/v1", false},
		{"", true},
		{"file:///etc/passwd", true},
		{"localhost:8000", true},
		{"http://", true},
	}
	for _, tt := range tests {
		err := ValidateAPIURL(tt.url)
		if tt.wantErr != (err != nil) {
			t.Errorf("ValidateAPIURL(%q) = %v, want error %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestLoadDefersAPIURLCheck(t *testing.T) {
	t.Setenv(EnvAPIURL, "not a url")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "not a url" {
		t.Errorf("expected env api_url to be kept as-is, got %q", cfg.APIURL)
	}
	if err := ValidateAPIURL(cfg.APIURL); err == nil {
		t.Error("expected ValidateAPIURL to reject the env value")
	}
}

func TestValidateLogLevel(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8000", LogLevel: "verbose"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown log level")
	}
	cfg.LogLevel = "WARN"
	if err := validate(cfg); err != nil {
		t.Errorf("unexpected error for WARN: %v", err)
	}
}

func TestValidateRequestsPerSecond(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8000", RequestsPerSecond: -1}
	if err := validate(cfg); err == nil {
		t.Error("expected error for negative requests_per_second")
	}
}
