package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Login = "octocat"
	cfg.Password = "hunter2"
	cfg.AccessToken = "ghp_abcdefghij1234"

	r := cfg.Redacted()
	assert.Equal(t, "octocat", r.Login)
	assert.Equal(t, "********", r.Password)
	assert.Equal(t, "********1234", r.AccessToken)
	assert.Equal(t, "hunter2", cfg.Password, "original is untouched")

	cfg.AccessToken = "short"
	assert.Equal(t, "********", cfg.Redacted().AccessToken)
}

func TestYAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Login = "octocat"
	cfg.Password = "hunter2"
	cfg.Path = "/tmp/config.yaml"

	data, err := cfg.YAML()
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "/tmp/config.yaml")
	assert.NotContains(t, out, "access_token", "empty secrets are omitted")

	var back map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "octocat", back["login"])
	assert.Equal(t, 10, back["frequency"])
	assert.Equal(t, "core", back["resource"])
	assert.Equal(t, "https://api.github.com", back["api_url"])
}
