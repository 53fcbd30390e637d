package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/monitor"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// Validate checks the settings and returns a CONFIG error describing the
// first problem found.
func Validate(cfg *Config) error {
	if cfg.Frequency < MinFrequency {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Frequency must be at least %d second, got %d", MinFrequency, cfg.Frequency),
			"Pass a whole number of seconds, e.g. --frequency 10")
	}

	if _, err := ratelimit.ParseResource(cfg.Resource); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown resource '%s'", cfg.Resource),
			"Use one of: core, search, graphql")
	}

	if err := validateAPIURL(cfg.APIURL); err != nil {
		return err
	}

	if cfg.AccessToken == "" {
		switch {
		case cfg.Login != "" && cfg.Password == "":
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Login '%s' was given without a password", cfg.Login),
				"Pass --password, set GRLM_PASSWORD, or use --access-token instead")
		case cfg.Login == "" && cfg.Password != "":
			return errors.New(errors.ErrConfig,
				"A password was given without a login",
				"Pass --login along with --password")
		}
	}

	return nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid API URL '%s'", raw),
			"Use a full URL such as https://api.github.com or https://github.example.com/api/v3")
	}
	return nil
}

// AuthMode selects credentials. A token wins over login and password;
// with neither, requests are anonymous.
func (c *Config) AuthMode() ratelimit.AuthMode {
	switch {
	case c.AccessToken != "":
		return ratelimit.Token(c.AccessToken)
	case c.Login != "":
		return ratelimit.BasicLogin(c.Login, c.Password)
	default:
		return ratelimit.Anonymous()
	}
}

// MonitorConfig validates cfg and converts it to the monitor's input.
func (c *Config) MonitorConfig() (monitor.Config, error) {
	if err := Validate(c); err != nil {
		return monitor.Config{}, err
	}
	resource, _ := ratelimit.ParseResource(c.Resource)
	return monitor.Config{
		PollInterval: time.Duration(c.Frequency) * time.Second,
		Auth:         c.AuthMode(),
		Resource:     resource,
	}, nil
}
