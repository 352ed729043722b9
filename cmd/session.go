package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/config"
	"github.com/matheuskafuri/ingester/internal/logging"
)

const envAPIURLName = config.EnvAPIURL

// session bundles what every subcommand needs: resolved config, a logger and
// an API client bound to the resolved base URL.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	client *archive.Client
}

// resolveAPIURL applies the --api-url flag on top of the config value, which
// already carries the environment override.
func resolveAPIURL(flag string, cfg *config.Config) (string, error) {
	u := cfg.APIURL
	if flag != "" {
		u = flag
	}
	if err := config.ValidateAPIURL(u); err != nil {
		return "", err
	}
	return u, nil
}

func resolveLogLevel(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.LogLevel
}

func userAgent() string {
	return "ingester/" + version
}

// newSession loads config and builds a client logging to w.
func newSession(w io.Writer) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return sessionFor(cfg, logging.New(w, resolveLogLevel(flagLogLevel, cfg)))
}

func sessionFor(cfg *config.Config, logger *slog.Logger) (*session, error) {
	apiURL, err := resolveAPIURL(flagAPIURL, cfg)
	if err != nil {
		return nil, err
	}
	client := archive.NewClient(apiURL,
		archive.WithLogger(logger),
		archive.WithUserAgent(userAgent()),
		archive.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}),
		archive.WithRateLimit(cfg.RequestsPerSecond, max(1, int(cfg.RequestsPerSecond))),
	)
	return &session{cfg: cfg, logger: logger, client: client}, nil
}
