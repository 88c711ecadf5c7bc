// Package config loads the scene description and window settings.
//
// Every field has a default that reproduces the stock solar system, so a
// config file only needs the values it wants to change.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// SunName is the name of the body at the origin.
const SunName = "Sun"

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `toml:"log_level"`

	Window  Window   `toml:"window"`
	Camera  Camera   `toml:"camera"`
	Assets  Assets   `toml:"assets"`
	Stars   Stars    `toml:"stars"`
	Sun     Sun      `toml:"sun"`
	Planets []Planet `toml:"planets"`
	Moon    Moon     `toml:"moon"`
	Ring    Ring     `toml:"ring"`
	Light   Light    `toml:"light"`
}

type Window struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ShowHUD bool   `toml:"show_hud"`
}

type Camera struct {
	FOV      float64 `toml:"fov"` // vertical, degrees
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	Distance float64 `toml:"distance"`
	// Damping is the fraction of pending rotation applied per frame.
	Damping     float64 `toml:"damping"`
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
}

type Assets struct {
	Dir        string `toml:"dir"`
	Background string `toml:"background"`
	// MaxTextureSize caps the longest edge of a decoded texture.
	MaxTextureSize int `toml:"max_texture_size"`
}

type Stars struct {
	Count  int     `toml:"count"`
	Extent float64 `toml:"extent"`
	Color  string  `toml:"color"`
	// Seed of the placement; 0 seeds from the clock.
	Seed int64 `toml:"seed"`
}

type Sun struct {
	Radius            float64 `toml:"radius"`
	Segments          int     `toml:"segments"`
	Texture           string  `toml:"texture"`
	Color             string  `toml:"color"`
	Emissive          string  `toml:"emissive"`
	EmissiveIntensity float64 `toml:"emissive_intensity"`
}

type Planet struct {
	Name     string  `toml:"name"`
	Radius   float64 `toml:"radius"`
	Segments int     `toml:"segments"`
	Texture  string  `toml:"texture"`
	Color    string  `toml:"color"`
	Distance float64 `toml:"distance"`
	Speed    float64 `toml:"speed"`
}

type Moon struct {
	Name     string  `toml:"name"`
	Parent   string  `toml:"parent"`
	Radius   float64 `toml:"radius"`
	Segments int     `toml:"segments"`
	Texture  string  `toml:"texture"`
	Color    string  `toml:"color"`
	Offset   float64 `toml:"offset"`
	Speed    float64 `toml:"speed"`
}

type Ring struct {
	Planet          string  `toml:"planet"`
	Radius          float64 `toml:"radius"`
	Tube            float64 `toml:"tube"`
	RadialSegments  int     `toml:"radial_segments"`
	TubularSegments int     `toml:"tubular_segments"`
	Tilt            float64 `toml:"tilt"` // radians about x
	Texture         string  `toml:"texture"`
	Color           string  `toml:"color"`
	Opacity         float64 `toml:"opacity"`
}

type Light struct {
	Point   PointLight   `toml:"point"`
	Ambient AmbientLight `toml:"ambient"`
}

type PointLight struct {
	Color     string  `toml:"color"`
	Intensity float64 `toml:"intensity"`
	// Distance is the cutoff range; 0 means unlimited.
	Distance float64 `toml:"distance"`
	Decay    float64 `toml:"decay"`
}

type AmbientLight struct {
	Color     string  `toml:"color"`
	Intensity float64 `toml:"intensity"`
}

// Default returns the stock solar system.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Title:   "Solar System",
			Width:   1280,
			Height:  720,
			ShowHUD: true,
		},
		Camera: Camera{
			FOV:         75,
			Near:        0.1,
			Far:         2000,
			Distance:    60,
			Damping:     0.05,
			MinDistance: 5,
			MaxDistance: 400,
		},
		Assets: Assets{
			Dir:            "assets",
			Background:     "space.jpg",
			MaxTextureSize: 2048,
		},
		Stars: Stars{Count: 100, Extent: 500, Color: "#ffffff"},
		Sun: Sun{
			Radius:            4,
			Segments:          64,
			Texture:           "sun.jpg",
			Color:             "#fdb813",
			Emissive:          "#ffaa33",
			EmissiveIntensity: 0.8,
		},
		Planets: []Planet{
			{Name: "Mercury", Radius: 0.3, Segments: 32, Texture: "mercury.png", Color: "#b5b5b5", Distance: 5, Speed: 0.002},
			{Name: "Venus", Radius: 0.8, Segments: 32, Texture: "venus.jpg", Color: "#e8cda2", Distance: 8, Speed: 0.0015},
			{Name: "Earth", Radius: 1, Segments: 32, Texture: "earth.jpg", Color: "#2e86ab", Distance: 11, Speed: 0.001},
			{Name: "Mars", Radius: 0.6, Segments: 32, Texture: "mars.png", Color: "#c1440e", Distance: 15, Speed: 0.0008},
			{Name: "Jupiter", Radius: 2.5, Segments: 32, Texture: "jupiter.jpg", Color: "#d8ca9d", Distance: 25, Speed: 0.0004},
			{Name: "Saturn", Radius: 2, Segments: 32, Texture: "saturn.jpg", Color: "#ead6b8", Distance: 35, Speed: 0.0003},
			{Name: "Uranus", Radius: 1.5, Segments: 32, Texture: "uranus.jpg", Color: "#d1e7e7", Distance: 45, Speed: 0.0002},
			{Name: "Neptune", Radius: 1.4, Segments: 32, Texture: "neptune.jpg", Color: "#5b5ddf", Distance: 55, Speed: 0.00015},
		},
		Moon: Moon{
			Name:     "Moon",
			Parent:   "Earth",
			Radius:   0.3,
			Segments: 32,
			Texture:  "moon.jpg",
			Color:    "#c8c8c8",
			Offset:   1.5,
			Speed:    0.002,
		},
		Ring: Ring{
			Planet:          "Saturn",
			Radius:          3,
			Tube:            0.3,
			RadialSegments:  2,
			TubularSegments: 100,
			Tilt:            math.Pi / 2,
			Texture:         "saturn_ring.png",
			Color:           "#c2b280",
			Opacity:         1,
		},
		Light: Light{
			Point:   PointLight{Color: "#ffffff", Intensity: 100, Distance: 100, Decay: 0.8},
			Ambient: AmbientLight{Color: "#ffffff", Intensity: 0.5},
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping the current value of absent fields.
// A planets list in the document replaces the current one as a whole.
// Unknown keys are rejected so that typos do not pass silently.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw["planets"]; ok {
		cfg.Planets = nil
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, sme.String())
		}
		return err
	}
	return nil
}

// Validate checks the settings that would otherwise break rendering or
// produce orbits that are not circles.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		fail("camera fov %.1f must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		fail("camera near %.3f / far %.3f must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Damping <= 0 || c.Camera.Damping > 1 {
		fail("camera damping %.3f must be in (0, 1]", c.Camera.Damping)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		fail("camera distance range [%.1f, %.1f] is empty", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.Distance < c.Camera.MinDistance || c.Camera.Distance > c.Camera.MaxDistance {
		fail("camera distance %.1f outside [%.1f, %.1f]", c.Camera.Distance, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Assets.MaxTextureSize <= 0 {
		fail("max texture size must be positive, got %d", c.Assets.MaxTextureSize)
	}
	if c.Stars.Count < 0 || c.Stars.Extent < 0 {
		fail("star count %d and extent %.1f must be non-negative", c.Stars.Count, c.Stars.Extent)
	}
	if c.Sun.Radius <= 0 || c.Sun.Segments < 3 {
		fail("sun radius %.2f must be positive with at least 3 segments", c.Sun.Radius)
	}

	names := map[string]bool{SunName: true}
	for i, p := range c.Planets {
		switch {
		case p.Name == "":
			fail("planet %d has no name", i)
		case names[p.Name]:
			fail("planet %s listed twice", p.Name)
		case p.Radius <= 0 || p.Segments < 3:
			fail("planet %s: radius %.2f must be positive with at least 3 segments", p.Name, p.Radius)
		case p.Distance < 0 || !finite(p.Speed):
			fail("planet %s: distance %.2f must be non-negative and speed finite", p.Name, p.Distance)
		}
		names[p.Name] = true
	}
	if c.Moon.Name != "" {
		if names[c.Moon.Name] {
			fail("moon name %s is already taken", c.Moon.Name)
		}
		if !names[c.Moon.Parent] {
			fail("moon %s orbits unknown planet %q", c.Moon.Name, c.Moon.Parent)
		}
		if c.Moon.Offset < 0 || !finite(c.Moon.Speed) || c.Moon.Radius <= 0 || c.Moon.Segments < 3 {
			fail("moon %s has invalid orbit or size", c.Moon.Name)
		}
	}
	if c.Ring.Planet != "" {
		if !names[c.Ring.Planet] {
			fail("ring attached to unknown planet %q", c.Ring.Planet)
		}
		if c.Ring.Opacity < 0 || c.Ring.Opacity > 1 {
			fail("ring opacity %.2f must be in [0, 1]", c.Ring.Opacity)
		}
	}
	if c.Light.Point.Intensity < 0 || c.Light.Point.Distance < 0 || c.Light.Ambient.Intensity < 0 {
		fail("light intensities and distance must be non-negative")
	}

	for _, hex := range []string{
		c.Stars.Color, c.Sun.Color, c.Sun.Emissive, c.Moon.Color, c.Ring.Color,
		c.Light.Point.Color, c.Light.Ambient.Color,
	} {
		if _, err := ParseColor(hex); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range c.Planets {
		if _, err := ParseColor(p.Color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SlogLevel maps LogLevel onto a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// ParseColor parses a "#rrggbb" string. An empty string is black.
func ParseColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, hex, err)
	}
	return c, nil
}

// MustColor is ParseColor for values that already passed Validate.
func MustColor(hex string) colorful.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
