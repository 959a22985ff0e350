package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 400, cfg.FileLength.Threshold)
	assert.Equal(t, 14, cfg.MethodLength.Threshold)
	assert.Equal(t, 10, cfg.FileLength.Top)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, []string{"console.log"}, cfg.Strip.Targets)
	assert.Contains(t, cfg.Exclude, "node_modules")
	assert.Contains(t, cfg.Docs.TestCallbacks, "beforeEach")
	assert.False(t, cfg.Docs.IncludeArrows)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfig_Independent(t *testing.T) {
	a := DefaultConfig()
	a.Exclude[0] = "changed"

	assert.Equal(t, "node_modules", DefaultConfig().Exclude[0])
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	content := `
parallel: 8
exclude: [vendor, "**/generated/**"]
file_length:
  threshold: 250
method_length:
  threshold: 20
  top: 5
docs:
  include_arrows: true
strip:
  targets: [console.log, console.debug]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Parallel)
	assert.Equal(t, []string{"vendor", "**/generated/**"}, cfg.Exclude)
	assert.Equal(t, 250, cfg.FileLength.Threshold)
	assert.Equal(t, 10, cfg.FileLength.Top)
	assert.Equal(t, 20, cfg.MethodLength.Threshold)
	assert.Equal(t, 5, cfg.MethodLength.Top)
	assert.True(t, cfg.Docs.IncludeArrows)
	assert.Equal(t, []string{"console.log", "console.debug"}, cfg.Strip.Targets)
	assert.Equal(t, ".codeaudit-backups", cfg.Strip.BackupDir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CODEAUDIT_PARALLEL", "2")
	t.Setenv("CODEAUDIT_METHOD_LENGTH_THRESHOLD", "30")

	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parallel: 6\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Parallel)
	assert.Equal(t, 30, cfg.MethodLength.Threshold)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CODEAUDIT_TEST_DOTENV=from-file\n"), 0o600))

		t.Cleanup(func() { _ = os.Unsetenv("CODEAUDIT_TEST_DOTENV") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("CODEAUDIT_TEST_DOTENV"))
	})

	t.Run("keeps existing variables", func(t *testing.T) {
		t.Setenv("CODEAUDIT_TEST_KEEP", "from-env")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CODEAUDIT_TEST_KEEP=from-file\n"), 0o600))

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-env", os.Getenv("CODEAUDIT_TEST_KEEP"))
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{
			name:   "zero file threshold",
			mutate: func(c *Config) { c.FileLength.Threshold = 0 },
			errMsg: "file_length.threshold must be positive",
		},
		{
			name:   "negative method threshold",
			mutate: func(c *Config) { c.MethodLength.Threshold = -1 },
			errMsg: "method_length.threshold must be positive",
		},
		{
			name:   "zero parallel",
			mutate: func(c *Config) { c.Parallel = 0 },
			errMsg: "parallel must be positive",
		},
		{
			name:   "negative top",
			mutate: func(c *Config) { c.Docs.Top = -3 },
			errMsg: "docs.top must not be negative",
		},
		{
			name:   "no strip targets",
			mutate: func(c *Config) { c.Strip.Targets = nil },
			errMsg: "strip.targets must not be empty",
		},
		{
			name:   "target with parens",
			mutate: func(c *Config) { c.Strip.Targets = []string{"console.log()"} },
			errMsg: "invalid strip target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
