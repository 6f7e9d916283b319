package main

import (
	"fmt"
	"log/slog"

	"uidmigrate/internal/config"
	"uidmigrate/internal/logging"
	"uidmigrate/internal/migrate"
)

// commandContext carries lazily loaded shared state between commands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	logger     *slog.Logger

	// decider overrides the interactive decision source; tests use it to
	// script answers without a terminal.
	decider migrate.DecisionFunc
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	c.logger = logger
	return logger, nil
}
