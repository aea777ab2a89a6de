package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, 60*time.Minute, cfg.Auth.AccessTokenTTL)
	require.NotNil(t, cfg.Tasks)
	assert.Equal(t, 100, cfg.Tasks.DefaultPageSize)
	assert.Equal(t, 1000, cfg.Tasks.MaxPageSize)
	assert.Equal(t, "UTC", cfg.Tasks.Timezone)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:  &AuthConfig{BcryptCost: 6, AccessTokenTTL: 5 * time.Minute},
		Tasks: &TasksConfig{DefaultPageSize: 20, MaxPageSize: 50, Timezone: "Europe/Moscow"},
	}
	cfg.HTTP.MaxRequestBodySize = "1MB"

	applyDefaults(cfg)

	assert.Equal(t, "1MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 20, cfg.Tasks.DefaultPageSize)
	assert.Equal(t, 50, cfg.Tasks.MaxPageSize)
	assert.Equal(t, "Europe/Moscow", cfg.Tasks.Timezone)
}

func TestApplyDefaults_DefaultPageSizeNeverExceedsMax(t *testing.T) {
	cfg := &Config{Tasks: &TasksConfig{DefaultPageSize: 500, MaxPageSize: 10}}

	applyDefaults(cfg)

	assert.Equal(t, 10, cfg.Tasks.DefaultPageSize)
}

func TestLoadWithEnv_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte("env:\n  serviceName: todo\nsecretKey:\n  access: from-yaml\nauth:\n  accessTokenTTL: 15m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "todo", cfg.Env.ServiceName)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}
