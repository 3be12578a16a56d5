package folio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "tuning.yaml", "spacing: 4.2\ngalleryBend: 0.25\nentryDuration: 2\n"},
		{"toml", "tuning.toml", "spacing = 4.2\ngalleryBend = 0.25\nentryDuration = 2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, dir, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, 4.2, cfg.Spacing)
			assert.Equal(t, 0.25, cfg.GalleryBend)
			assert.Equal(t, 2.0, cfg.EntryDuration)

			def := DefaultConfig()
			assert.Equal(t, def.Friction, cfg.Friction)
			assert.Equal(t, def.CardWidth, cfg.CardWidth)
			assert.Equal(t, def.MaxTextureSize, cfg.MaxTextureSize)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, dir, "bad.yaml", "spacing: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, dir, "bad.toml", "spacing = "))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, dir, "neg.yaml", "spacing: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.CardWidth = 0 }},
		{"negative height", func(c *Config) { c.CardHeight = -1 }},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"zero duration", func(c *Config) { c.EntryDuration = 0 }},
		{"negative bend", func(c *Config) { c.GalleryBend = -0.1 }},
		{"friction one", func(c *Config) { c.Friction = 1 }},
		{"zero snap", func(c *Config) { c.SnapStrength = 0 }},
		{"snap above one", func(c *Config) { c.SnapStrength = 1.5 }},
		{"zero min velocity", func(c *Config) { c.MinVelocity = 0 }},
		{"negative delay", func(c *Config) { c.EntryDelay = -1 }},
		{"negative idle", func(c *Config) { c.ScrollIdleDelay = -1 }},
		{"negative theme fade", func(c *Config) { c.ThemeFade = -1 }},
		{"zero open step", func(c *Config) { c.OpenStep = 0 }},
		{"negative texture size", func(c *Config) { c.MaxTextureSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestMaxScroll(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.0, cfg.maxScroll(1))
	assert.InDelta(t, 6*3.3, cfg.maxScroll(7), 1e-12)
}
