package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"annconv/internal/config"
	"annconv/internal/logging"
	"annconv/internal/runlog"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger from the loaded configuration.
// Diagnostics go to stderr so conversion output on stdout stays clean.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	})
	return c.logger, c.loggerErr
}

// openRunLog opens the configured run-log store, or returns nil when
// recording is disabled. A store held by another process is reported as a
// warning rather than failing the conversion.
func openRunLog(cfg *config.Config, logger *slog.Logger) *runlog.Store {
	if !cfg.RunLog.Enabled {
		return nil
	}
	store, err := runlog.Open(cfg.RunLog.Dir)
	if err != nil {
		if errors.Is(err, runlog.ErrBusy) {
			logger.Warn("run log is in use by another process; this run will not be recorded",
				logging.String("dir", cfg.RunLog.Dir))
		} else {
			logger.Warn("run log unavailable; this run will not be recorded",
				logging.Error(err))
		}
		return nil
	}
	return store
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
