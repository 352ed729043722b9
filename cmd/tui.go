package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/ingester/internal/config"
	"github.com/matheuskafuri/ingester/internal/logging"
	"github.com/matheuskafuri/ingester/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The browser owns the terminal, so logs go to a file.
	logger, closeLog, err := logging.OpenFile(config.LogPath(), resolveLogLevel(flagLogLevel, cfg))
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := sessionFor(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting browser", "api_url", s.client.BaseURL(), "version", version)

	return tui.Run(tui.RunOpts{
		Store:   s.client,
		Params:  cfg.InitialParams(),
		Locale:  cfg.Locale,
		Timeout: cfg.TimeoutDuration(),
		Logger:  logger,
	})
}
