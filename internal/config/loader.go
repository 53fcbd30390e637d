package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/grlm/internal/errors"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. GRLM_ACCESS_TOKEN.
	EnvPrefix = "GRLM"
	// GlobalConfigDir is the config directory relative to the home directory.
	GlobalConfigDir = ".config/grlm"
	// GlobalConfigFile is the config file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
)

// Keys lists every setting viper knows about. AutomaticEnv only resolves
// keys that have a default, so each one gets one.
var Keys = []string{
	"login", "password", "access_token",
	"frequency", "resource", "api_url",
	"metrics_addr", "log_file", "debug",
}

// NewViper returns a viper instance with defaults and GRLM_* environment
// lookups configured. Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("login", "")
	v.SetDefault("password", "")
	v.SetDefault("access_token", "")
	v.SetDefault("frequency", def.Frequency)
	v.SetDefault("resource", def.Resource)
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	return v
}

// Find resolves the config file to read:
// 1. explicit path (from --config), which must exist
// 2. ~/.config/grlm/config.yaml
//
// Returns an empty path when no file applies.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads the config file (if any) into v and decodes the merged
// settings. Flag bindings on v take precedence over the environment,
// which takes precedence over the file.
func Load(v *viper.Viper, explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check "+path+" is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the value types in "+describe(path))
	}
	cfg.Path = path
	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	c.Login = strings.TrimSpace(c.Login)
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.Resource = strings.ToLower(strings.TrimSpace(c.Resource))
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
}

func describe(path string) string {
	if path == "" {
		return "your flags and GRLM_* environment variables"
	}
	return path
}
