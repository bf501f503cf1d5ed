package config

import "fmt"

const (
	ProfileCentered    = "centered"
	ProfileFramed      = "framed"
	ProfilePlaceholder = "placeholder"

	DefaultProfile = ProfileCentered
)

func Profiles() []string {
	return []string{ProfileCentered, ProfileFramed, ProfilePlaceholder}
}

// Profile returns a fresh copy of the named defaults.
func Profile(name string) (*Config, error) {
	base := Config{
		Profile: name,
		Asset:   "caravan.glb",
		Window:  WindowConfig{Title: "walkabout", Width: 1280, Height: 720},
		Camera: CameraConfig{
			FOV:          75,
			Near:         0.1,
			Far:          10000,
			Position:     Vec3{0, 2, 5},
			PointerSpeed: 1,
		},
		Motion: MotionConfig{Speed: 50, Damping: 10},
		Zoom:   ZoomConfig{Speed: 0.95, Min: 0.5, Max: 2.5},
		Controls: ControlsConfig{
			Bindings:    BindingsDefault,
			Overlay:     true,
			OverlayText: "Click to Start Walking",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}

	switch name {
	case ProfileCentered:
		base.Scene = SceneConfig{Background: 0xa0a0a0}
		base.Lights = []LightConfig{
			{Type: LightAmbient, Color: 0xffffff, Intensity: 0.6},
			{Type: LightDirectional, Color: 0xffffff, Intensity: 2, Position: Vec3{10, 20, 10}},
		}
		base.Framing = FramingConfig{Recenter: true, MaxSize: 100}

	case ProfileFramed:
		base.Scene = SceneConfig{Background: 0xbfd1e5, RenderBeforeLoad: true}
		base.Camera.FOV = 60
		base.Camera.Far = 5000
		base.Camera.Position = Vec3{0, 2, 10}
		base.Lights = []LightConfig{
			{Type: LightHemisphere, Color: 0xffffff, Ground: 0x444444, Intensity: 2},
			{Type: LightDirectional, Color: 0xffffff, Intensity: 2, Position: Vec3{50, 50, 50}},
		}
		base.Motion.Speed = 20
		base.Framing = FramingConfig{PreScale: 10, FrameCamera: true, HeightFactor: 0.2, DepthFactor: 0.8}
		base.Controls.OverlayDim = 0.5
		base.Debug.DistanceLogEvery = 50

	case ProfilePlaceholder:
		base.Scene = SceneConfig{
			Background:       0xdddddd,
			Placeholder:      true,
			PlaceholderSize:  50,
			PlaceholderSpin:  0.01,
			RenderBeforeLoad: true,
		}
		base.Camera.Far = 100000
		base.Camera.Position = Vec3{215.82127119847684, 143.6381054218573, 429.6770230411396}
		base.Lights = []LightConfig{
			{Type: LightHemisphere, Color: 0xffffff, Ground: 0x444444, Intensity: 1},
			{Type: LightDirectional, Color: 0xffffff, Intensity: 0.8, Position: Vec3{100, 200, 100}},
		}
		base.Motion.Speed = 800
		base.Zoom.Enabled = true
		base.Framing = FramingConfig{Recenter: true}
		base.Controls.Bindings = BindingsWASD
		base.Controls.Overlay = false

	default:
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknownProfile, name, Profiles())
	}

	return &base, nil
}
