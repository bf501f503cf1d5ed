package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalid        = errors.New("invalid config")
)

type Config struct {
	// Profile picks the defaults every other field starts from.
	Profile  string         `yaml:"profile"`
	Asset    string         `yaml:"asset"`
	Window   WindowConfig   `yaml:"window"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Lights   []LightConfig  `yaml:"lights"`
	Motion   MotionConfig   `yaml:"motion"`
	Zoom     ZoomConfig     `yaml:"zoom"`
	Framing  FramingConfig  `yaml:"framing"`
	Controls ControlsConfig `yaml:"controls"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SceneConfig struct {
	Background Color `yaml:"background"`
	// Placeholder shows a rotating wireframe cube until the asset loads.
	Placeholder     bool    `yaml:"placeholder"`
	PlaceholderSize float64 `yaml:"placeholder_size"`
	PlaceholderSpin float64 `yaml:"placeholder_spin"`
	// RenderBeforeLoad draws and moves the camera while the asset loads.
	RenderBeforeLoad bool `yaml:"render_before_load"`
}

type CameraConfig struct {
	FOV          float64 `yaml:"fov"`
	Near         float64 `yaml:"near"`
	Far          float64 `yaml:"far"`
	Position     Vec3    `yaml:"position"`
	LookAt       *Vec3   `yaml:"look_at"`
	PointerSpeed float64 `yaml:"pointer_speed"`
}

const (
	LightAmbient     = "ambient"
	LightDirectional = "directional"
	LightHemisphere  = "hemisphere"
)

type LightConfig struct {
	Type      string  `yaml:"type"`
	Color     Color   `yaml:"color"`
	Ground    Color   `yaml:"ground"`
	Intensity float64 `yaml:"intensity"`
	Position  Vec3    `yaml:"position"`
}

type MotionConfig struct {
	Speed   float64 `yaml:"speed"`
	Damping float64 `yaml:"damping"`
}

type ZoomConfig struct {
	Enabled bool    `yaml:"enabled"`
	Speed   float64 `yaml:"speed"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

type FramingConfig struct {
	Recenter     bool    `yaml:"recenter"`
	MaxSize      float64 `yaml:"max_size"`
	PreScale     float64 `yaml:"pre_scale"`
	FrameCamera  bool    `yaml:"frame_camera"`
	HeightFactor float64 `yaml:"height_factor"`
	DepthFactor  float64 `yaml:"depth_factor"`
}

const (
	BindingsDefault = "default"
	BindingsWASD    = "wasd"
)

type ControlsConfig struct {
	Bindings    string  `yaml:"bindings"`
	Overlay     bool    `yaml:"overlay"`
	OverlayText string  `yaml:"overlay_text"`
	OverlayDim  float64 `yaml:"overlay_dim"`
}

type DebugConfig struct {
	// DistanceLogEvery logs the camera distance from the origin every n
	// frames. Zero disables it.
	DistanceLogEvery int `yaml:"distance_log_every"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Vec3 is an x, y, z triple written as a YAML sequence.
type Vec3 [3]float64

// Color is a 24-bit RGB value written as "#rrggbb", "0xrrggbb" or an
// integer.
type Color uint32

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255}
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", node.Line)
	}
	s := strings.TrimSpace(node.Value)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil || v > 0xffffff {
		return fmt.Errorf("line %d: invalid color %q", node.Line, node.Value)
	}
	*c = Color(v)
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%06x", uint32(c)), nil
}

// Load reads a YAML config file. Fields missing from the file keep the
// values of the selected profile.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var head struct {
		Profile string `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Profile == "" {
		head.Profile = DefaultProfile
	}

	cfg, err := Profile(head.Profile)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Profile = head.Profile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera fov %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	check(finiteNonNegative(c.Camera.PointerSpeed), "camera pointer_speed %v", c.Camera.PointerSpeed)
	check(finiteNonNegative(c.Motion.Speed) && finiteNonNegative(c.Motion.Damping),
		"motion speed/damping %v/%v", c.Motion.Speed, c.Motion.Damping)
	check(c.Zoom.Speed > 0 && c.Zoom.Min > 0 && c.Zoom.Max >= c.Zoom.Min,
		"zoom speed/min/max %v/%v/%v", c.Zoom.Speed, c.Zoom.Min, c.Zoom.Max)
	check(c.Framing.MaxSize >= 0 && c.Framing.PreScale >= 0, "framing max_size/pre_scale %v/%v", c.Framing.MaxSize, c.Framing.PreScale)
	check(c.Controls.Bindings == BindingsDefault || c.Controls.Bindings == BindingsWASD, "controls bindings %q", c.Controls.Bindings)
	check(c.Controls.OverlayDim >= 0 && c.Controls.OverlayDim <= 1, "controls overlay_dim %v", c.Controls.OverlayDim)
	check(c.Debug.DistanceLogEvery >= 0, "debug distance_log_every %d", c.Debug.DistanceLogEvery)
	for i, l := range c.Lights {
		switch l.Type {
		case LightAmbient, LightDirectional, LightHemisphere:
		default:
			errs = append(errs, fmt.Errorf("light %d: type %q", i, l.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
