package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"yoloprep/internal/config"
	"yoloprep/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds the process logger from the resolved config on first use.
func (c *commandContext) logger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.log = logger
	})
	return c.log, c.logErr
}

func flagValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
