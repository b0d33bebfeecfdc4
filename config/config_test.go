package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvKey, EnvMode, EnvLimit, EnvDepth, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, pitch.C, cfg.Engine.DefaultKey)
	assert.Equal(t, scale.Ionian, cfg.Engine.DefaultMode)
	assert.Equal(t, 10, cfg.Engine.ComprehensiveLimit)
	assert.Equal(t, 3, cfg.Engine.DoubleDominantDepth)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "harmonia.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  default_key: G
  default_mode: Dorian
  comprehensive_limit: 5
logging:
  format: json
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, pitch.G, cfg.Engine.DefaultKey)
	assert.Equal(t, scale.Dorian, cfg.Engine.DefaultMode)
	assert.Equal(t, 5, cfg.Engine.ComprehensiveLimit)
	assert.Equal(t, 3, cfg.Engine.DoubleDominantDepth) // untouched default
	assert.Equal(t, FormatJSON, cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKey, "A")
	t.Setenv(EnvMode, "Aeolian")
	t.Setenv(EnvLimit, "4")
	t.Setenv(EnvDepth, "2")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, pitch.A, cfg.Engine.DefaultKey)
	assert.Equal(t, scale.Aeolian, cfg.Engine.DefaultMode)
	assert.Equal(t, 4, cfg.Engine.ComprehensiveLimit)
	assert.Equal(t, 2, cfg.Engine.DoubleDominantDepth)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrideInvalidNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLimit, "ten")
	_, err := Load("")
	assert.ErrorContains(t, err, EnvLimit)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HARMONIA_TEST_DOTENV=Lydian\n"), 0644))
	t.Setenv("HARMONIA_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("HARMONIA_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "Lydian", os.Getenv("HARMONIA_TEST_DOTENV"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"flat key", func(c *Config) { c.Engine.DefaultKey = "Bb" }},
		{"unknown mode", func(c *Config) { c.Engine.DefaultMode = "Bebop" }},
		{"zero limit", func(c *Config) { c.Engine.ComprehensiveLimit = 0 }},
		{"zero depth", func(c *Config) { c.Engine.DoubleDominantDepth = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "harmonia.yaml")
	cfg := Default()
	cfg.Engine.DefaultKey = pitch.E

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
