package config

import (
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/grlm/internal/errors"
)

const redactedSecret = "********"

// Redacted returns a copy with secrets masked. The last four characters of
// the token are kept so users can tell tokens apart.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Password != "" {
		out.Password = redactedSecret
	}
	if n := len(out.AccessToken); n > 0 {
		if n > 8 {
			out.AccessToken = redactedSecret + out.AccessToken[n-4:]
		} else {
			out.AccessToken = redactedSecret
		}
	}
	return &out
}

// YAML renders the redacted config in the config file format.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render config",
			"This is a bug, please report it")
	}
	return data, nil
}
