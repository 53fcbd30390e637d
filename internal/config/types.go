// Package config loads grlm settings from flags, GRLM_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import "github.com/rileyhilliard/grlm/internal/ratelimit"

const (
	// DefaultFrequency is the poll interval in seconds.
	DefaultFrequency = 10
	// MinFrequency is the shortest accepted poll interval in seconds.
	MinFrequency = 1
)

// Config holds every setting grlm reads. Keys match the YAML file and the
// GRLM_<KEY> environment variables.
type Config struct {
	Login       string `mapstructure:"login" yaml:"login,omitempty"`
	Password    string `mapstructure:"password" yaml:"password,omitempty"`
	AccessToken string `mapstructure:"access_token" yaml:"access_token,omitempty"`

	// Frequency is the poll interval in whole seconds.
	Frequency   int    `mapstructure:"frequency" yaml:"frequency"`
	Resource    string `mapstructure:"resource" yaml:"resource"`
	APIURL      string `mapstructure:"api_url" yaml:"api_url"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr,omitempty"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file,omitempty"`
	Debug       bool   `mapstructure:"debug" yaml:"debug,omitempty"`

	// Path is the config file that was read, empty if none.
	Path string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Frequency: DefaultFrequency,
		Resource:  string(ratelimit.ResourceCore),
		APIURL:    ratelimit.DefaultBaseURL,
	}
}
