package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nainya/gazette/internal/config"
	"github.com/nainya/gazette/internal/logger"
)

// loadConfig reads --config and applies persistent flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Source.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("pretty") {
		cfg.Logging.Pretty, _ = flags.GetBool("pretty")
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, out io.Writer) *logger.Logger {
	logger.InitGlobalLogger(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Output: out,
	})
	return logger.GetGlobalLogger()
}
