package folio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tuning parameter of the gallery. The engine keeps a
// pointer to the Config it was created with and reads it on every tick, so
// fields may be changed at runtime (directly, or through a TuningWatcher).
type Config struct {
	// Entry animation
	StripScroll   float64 `yaml:"stripScroll" toml:"stripScroll"`     // strip starts this far above its resting place
	EntryZ        float64 `yaml:"entryZ" toml:"entryZ"`               // strip starts this far behind
	EntryTilt     float64 `yaml:"entryTilt" toml:"entryTilt"`         // initial strip X rotation (radians)
	EntryDuration float64 `yaml:"entryDuration" toml:"entryDuration"` // seconds
	EntryDelay    float64 `yaml:"entryDelay" toml:"entryDelay"`       // seconds before an auto-start
	EntryStagger  float64 `yaml:"entryStagger" toml:"entryStagger"`   // per-card fade offset
	Smoothness    float64 `yaml:"smoothness" toml:"smoothness"`       // exponent of the inverse-power ease

	// Gallery pose
	GalleryPosX float64 `yaml:"galleryPosX" toml:"galleryPosX"`
	GalleryRotX float64 `yaml:"galleryRotX" toml:"galleryRotX"`
	GalleryRotY float64 `yaml:"galleryRotY" toml:"galleryRotY"`
	GalleryRotZ float64 `yaml:"galleryRotZ" toml:"galleryRotZ"`
	GalleryBend float64 `yaml:"galleryBend" toml:"galleryBend"`

	// Card dimensions
	CardWidth  float64 `yaml:"cardWidth" toml:"cardWidth"`
	CardHeight float64 `yaml:"cardHeight" toml:"cardHeight"`
	Spacing    float64 `yaml:"spacing" toml:"spacing"`

	// Depth falloff away from the centered card
	MinScale        float64 `yaml:"minScale" toml:"minScale"`
	FalloffDistance float64 `yaml:"falloffDistance" toml:"falloffDistance"`
	DepthFactor     float64 `yaml:"depthFactor" toml:"depthFactor"`

	// Scroll physics (per-tick factors)
	WheelSensitivity float64 `yaml:"wheelSensitivity" toml:"wheelSensitivity"`
	WheelLineScale   float64 `yaml:"wheelLineScale" toml:"wheelLineScale"` // pixels per wheel notch
	TouchSensitivity float64 `yaml:"touchSensitivity" toml:"touchSensitivity"`
	TouchMomentum    float64 `yaml:"touchMomentum" toml:"touchMomentum"`
	Friction         float64 `yaml:"friction" toml:"friction"`
	SnapStrength     float64 `yaml:"snapStrength" toml:"snapStrength"`
	MinVelocity      float64 `yaml:"minVelocity" toml:"minVelocity"`
	ScrollIdleDelay  float64 `yaml:"scrollIdleDelay" toml:"scrollIdleDelay"` // seconds

	// Gallery <-> hero morph (progress per tick)
	OpenStep  float64 `yaml:"openStep" toml:"openStep"`
	CloseStep float64 `yaml:"closeStep" toml:"closeStep"`

	// Background crossfade when the centered project changes (seconds).
	ThemeFade float64 `yaml:"themeFade" toml:"themeFade"`

	// Largest texture edge kept after decoding, in pixels.
	MaxTextureSize int `yaml:"maxTextureSize" toml:"maxTextureSize"`
}

// DefaultConfig returns the tuning the gallery ships with.
func DefaultConfig() *Config {
	return &Config{
		StripScroll:   17,
		EntryZ:        -9,
		EntryTilt:     -0.8,
		EntryDuration: 3.0,
		EntryDelay:    0.4,
		EntryStagger:  0.08,
		Smoothness:    3.0,

		GalleryPosX: 1.2,
		GalleryRotX: 0.03,
		GalleryRotY: -0.27,
		GalleryRotZ: -0.12,
		GalleryBend: 0.4,

		CardWidth:  4.0,
		CardHeight: 3.1,
		Spacing:    3.3,

		MinScale:        0.82,
		FalloffDistance: 4.5,
		DepthFactor:     0.12,

		WheelSensitivity: 0.0015,
		WheelLineScale:   100,
		TouchSensitivity: 0.003,
		TouchMomentum:    0.5,
		Friction:         0.92,
		SnapStrength:     0.08,
		MinVelocity:      0.0001,
		ScrollIdleDelay:  0.15,

		OpenStep:  0.035,
		CloseStep: 0.05,

		ThemeFade: 0.7,

		MaxTextureSize: 2048,
	}
}

// LoadConfig reads a tuning file and overlays it on DefaultConfig. The format
// is chosen by extension: .toml for TOML, anything else is parsed as YAML.
// Fields missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := decodeConfig(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfig unmarshals data into cfg using the format implied by path.
func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks that the values describe a usable gallery.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"cardWidth", c.CardWidth},
		{"cardHeight", c.CardHeight},
		{"spacing", c.Spacing},
		{"entryDuration", c.EntryDuration},
		{"smoothness", c.Smoothness},
		{"falloffDistance", c.FalloffDistance},
		{"openStep", c.OpenStep},
		{"closeStep", c.CloseStep},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.GalleryBend < 0 {
		return fmt.Errorf("%w: galleryBend must not be negative, got %v", ErrInvalidConfig, c.GalleryBend)
	}
	if c.Friction < 0 || c.Friction >= 1 {
		return fmt.Errorf("%w: friction must be in [0, 1), got %v", ErrInvalidConfig, c.Friction)
	}
	if c.SnapStrength <= 0 || c.SnapStrength > 1 {
		return fmt.Errorf("%w: snapStrength must be in (0, 1], got %v", ErrInvalidConfig, c.SnapStrength)
	}
	if c.MinVelocity <= 0 {
		return fmt.Errorf("%w: minVelocity must be positive, got %v", ErrInvalidConfig, c.MinVelocity)
	}
	if c.EntryDelay < 0 || c.ScrollIdleDelay < 0 || c.ThemeFade < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	}
	if c.MaxTextureSize < 0 {
		return fmt.Errorf("%w: maxTextureSize must not be negative, got %d", ErrInvalidConfig, c.MaxTextureSize)
	}
	return nil
}

// galleryPose returns the pose of a card resting at slot while the strip is
// scrolled to position. It is a pure function of its inputs; nothing about
// the previous frame carries over.
func (c *Config) galleryPose(slot, position float64) Pose {
	y := slot + position
	d := math.Abs(y)
	return Pose{
		X:     c.GalleryPosX,
		Y:     y,
		Z:     -d * c.DepthFactor,
		RotX:  c.GalleryRotX,
		RotY:  c.GalleryRotY,
		RotZ:  c.GalleryRotZ,
		Scale: lerp(1, c.MinScale, math.Min(d/c.FalloffDistance, 1)),
	}
}

// maxScroll returns the largest scroll position for n cards.
func (c *Config) maxScroll(n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(n-1) * c.Spacing
}
