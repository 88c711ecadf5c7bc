package config

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Planets, 8)
	assert.Equal(t, "Earth", cfg.Moon.Parent)
	assert.Equal(t, 1.5, cfg.Moon.Offset)
	assert.Equal(t, 0.002, cfg.Moon.Speed)
	assert.Equal(t, math.Pi/2, cfg.Ring.Tilt)
	assert.Equal(t, 100, cfg.Stars.Count)
	assert.Equal(t, 500.0, cfg.Stars.Extent)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[window]
width = 800

[stars]
count = 250
seed = 42
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 250, cfg.Stars.Count)
	assert.Equal(t, int64(42), cfg.Stars.Seed)
	assert.Equal(t, 500.0, cfg.Stars.Extent)
	assert.Len(t, cfg.Planets, 8)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParsePlanetsReplaceDefaults(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
[[planets]]
name = "Earth"
radius = 1
segments = 16
texture = "earth.jpg"
color = "#0000ff"
distance = 11
speed = 0.001

[[planets]]
name = "Mars"
radius = 0.6
segments = 16
distance = 15
speed = 0.0008
`), &cfg)
	require.NoError(t, err)
	require.Len(t, cfg.Planets, 2)
	assert.Equal(t, "Mars", cfg.Planets[1].Name)

	cfg.Ring.Planet = ""
	assert.NoError(t, cfg.Validate())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Parse([]byte("[window]\nwidht = 10\n"), &cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"no damping", func(c *Config) { c.Camera.Damping = 0 }},
		{"camera outside range", func(c *Config) { c.Camera.Distance = 1000 }},
		{"negative stars", func(c *Config) { c.Stars.Count = -1 }},
		{"negative planet distance", func(c *Config) { c.Planets[2].Distance = -1 }},
		{"infinite speed", func(c *Config) { c.Planets[0].Speed = math.Inf(1) }},
		{"duplicate planet", func(c *Config) { c.Planets[1].Name = c.Planets[0].Name }},
		{"orphan moon", func(c *Config) { c.Moon.Parent = "Pluto" }},
		{"orphan ring", func(c *Config) { c.Ring.Planet = "Pluto" }},
		{"bad color", func(c *Config) { c.Sun.Emissive = "orange" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative light", func(c *Config) { c.Light.Ambient.Intensity = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ffaa33")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0xaa/255.0, c.G, 1e-9)
	assert.InDelta(t, 0x33/255.0, c.B, 1e-9)

	black, err := ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, black.R+black.G+black.B)

	assert.Panics(t, func() { MustColor("nope") })
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "solarsystem.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateRejectsTakenMoonName(t *testing.T) {
	for _, name := range []string{"Mars", SunName} {
		cfg := Default()
		cfg.Moon.Name = name
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}

	cfg := Default()
	cfg.Planets[0].Name = SunName
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger(&buf)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
