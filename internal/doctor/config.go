package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/grlm/internal/config"
	"github.com/rileyhilliard/grlm/internal/errors"
)

// ConfigFileCheck reports which config file is in use.
type ConfigFileCheck struct {
	Config *config.Config
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	if c.Config.Path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusPass,
			Message:    "No config file, using flags and environment",
			Suggestion: "Save settings with 'grlm config > ~/.config/grlm/config.yaml'",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file: " + c.Config.Path,
	}
}

// ConfigValidCheck runs config validation.
type ConfigValidCheck struct {
	Config *config.Config
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return "CONFIG" }

func (c *ConfigValidCheck) Run(context.Context) CheckResult {
	if err := config.Validate(c.Config); err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: errors.Summary(err),
		}
		if e, ok := err.(*errors.Error); ok {
			result.Message = e.Message
			result.Suggestion = e.Suggestion
		}
		return result
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Watching %s every %ds via %s",
			c.Config.Resource, c.Config.Frequency, c.Config.APIURL),
	}
}

// NewConfigChecks returns the CONFIG checks for cfg.
func NewConfigChecks(cfg *config.Config) []Check {
	return []Check{
		&ConfigFileCheck{Config: cfg},
		&ConfigValidCheck{Config: cfg},
	}
}
