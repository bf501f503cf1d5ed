// Package viewer runs a first-person walkthrough of a single model as an
// ebiten game.
package viewer

import (
	"context"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/walkabout"
	"github.com/smasonuk/walkabout/asset"
	"github.com/smasonuk/walkabout/framing"
	"github.com/smasonuk/walkabout/input"
	"github.com/smasonuk/walkabout/internal/config"
	"github.com/smasonuk/walkabout/motion"
)

var placeholderColor = color.RGBA{G: 255, A: 255}

// Session owns everything on screen. All methods run on the game loop.
type Session struct {
	cfg *config.Config
	log *slog.Logger

	loader   *asset.Loader
	pending  <-chan asset.Result
	cancel   context.CancelFunc
	watcher  *config.Watcher
	loaded   bool
	model    *walkabout.Model
	frameRes framing.Result

	scene       *walkabout.Scene
	camera      *walkabout.Camera
	renderer    *walkabout.Renderer
	batcher     *walkabout.Batcher
	placeholder *walkabout.Model

	tracker    *input.Tracker
	poller     input.Poller
	integrator *motion.Integrator
	lock       *PointerLock
	overlay    *Overlay

	cursorX, cursorY int
	lookPrimed       bool

	width, height int
	frames        int
}

type Option func(*Session)

// WithCursor replaces the ebiten cursor used by the pointer lock.
func WithCursor(c Cursor) Option {
	return func(s *Session) { s.lock = NewPointerLock(c) }
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		cfg:      cfg,
		log:      log,
		scene:    walkabout.NewScene(cfg.Scene.Background.RGBA()),
		renderer: walkabout.NewRenderer(cfg.Window.Width, cfg.Window.Height),
		batcher:  walkabout.NewBatcher(),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	for _, o := range opts {
		o(s)
	}
	if s.lock == nil {
		s.lock = NewPointerLock(nil)
	}

	s.loader = &asset.Loader{Progress: s.progressLogger()}

	for _, l := range cfg.Lights {
		s.scene.AddLight(newLight(l))
	}

	s.camera = walkabout.NewCamera(cfg.Camera.FOV, float64(s.width)/float64(s.height), cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	s.camera.SetPosition(p[0], p[1], p[2])
	if cfg.Camera.LookAt != nil {
		t := *cfg.Camera.LookAt
		s.camera.LookAt(walkabout.NewVector3(t[0], t[1], t[2]))
	}

	bindings := input.DefaultBindings()
	if cfg.Controls.Bindings == config.BindingsWASD {
		bindings = input.WASDBindings()
	}
	s.tracker = input.NewTracker(bindings, zoomConfig(cfg.Zoom))
	s.integrator = motion.NewIntegrator(motionConfig(cfg.Motion))
	s.applyTuning(cfg)

	if cfg.Scene.Placeholder {
		size := cfg.Scene.PlaceholderSize
		if size <= 0 {
			size = 50
		}
		s.placeholder = walkabout.NewBox(size, placeholderColor)
		s.placeholder.Name = "placeholder"
		s.placeholder.Wireframe = true
		s.scene.Add(s.placeholder)
	}

	if cfg.Controls.Overlay {
		ov, err := NewOverlay(cfg.Controls.OverlayText, cfg.Controls.OverlayDim)
		if err != nil {
			return nil, err
		}
		s.overlay = ov
	}

	s.lock.OnChange(func(locked bool) {
		s.overlay.SetVisible(!locked)
		s.lookPrimed = false
		if !locked {
			s.tracker.Reset()
		}
		s.log.Debug("pointer lock changed", "locked", locked)
	})

	return s, nil
}

// Start begins loading the configured asset in the background.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.log.Info("loading model", "path", s.cfg.Asset)
	s.pending = s.loader.LoadAsync(ctx, s.cfg.Asset)
}

// WatchConfig applies motion, zoom and pointer tuning from path whenever the
// file changes.
func (s *Session) WatchConfig(path string) error {
	w, err := config.Watch(path)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

func (s *Session) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.pending = nil
	s.lock.Unlock()
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Session) Update() error {
	s.pollLoad()
	s.pollConfig()

	s.lock.Sync()
	if !s.lock.Locked() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.lock.Lock()
	} else if s.lock.Locked() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.lock.Unlock()
	}

	s.poller.Poll(s.tracker)

	if s.lock.Locked() {
		x, y := ebiten.CursorPosition()
		if s.lookPrimed {
			s.camera.Rotate(float64(x-s.cursorX), float64(y-s.cursorY))
		}
		s.cursorX, s.cursorY = x, y
		s.lookPrimed = true
	}

	s.Tick(1 / float64(ebiten.TPS()))
	return nil
}

// Tick advances the simulation by delta seconds.
func (s *Session) Tick(delta float64) {
	if !s.active() {
		return
	}

	if z := s.tracker.Zoom(); z != s.camera.Zoom {
		s.camera.Zoom = z
		s.camera.UpdateProjection()
	}

	s.integrator.Advance(delta, s.tracker.Flags(), s.camera)

	if s.placeholder != nil {
		spin := s.cfg.Scene.PlaceholderSpin
		s.placeholder.Rotation.X += spin
		s.placeholder.Rotation.Y += spin
	}

	s.frames++
	if n := s.cfg.Debug.DistanceLogEvery; n > 0 && s.frames%n == 0 {
		s.log.Debug("camera distance", "distance", s.camera.Position().Length())
	}
}

func (s *Session) active() bool {
	return s.loaded || s.cfg.Scene.RenderBeforeLoad
}

func (s *Session) pollLoad() {
	if s.pending == nil {
		return
	}
	select {
	case res, ok := <-s.pending:
		s.pending = nil
		if ok {
			s.HandleLoad(res)
		}
	default:
	}
}

func (s *Session) pollConfig() {
	if s.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-s.watcher.Configs:
		if ok {
			s.applyTuning(cfg)
			s.log.Info("config reloaded", "speed", cfg.Motion.Speed, "zoom", cfg.Zoom.Enabled)
		}
	case err, ok := <-s.watcher.Errors:
		if ok {
			s.log.Warn("config reload failed", "error", err)
		}
	default:
	}
}

// applyTuning takes the settings that can change while running. Scene,
// camera placement and bindings stay as they were at startup.
func (s *Session) applyTuning(cfg *config.Config) {
	s.integrator.SetConfig(motionConfig(cfg.Motion))
	s.tracker.SetZoomConfig(zoomConfig(cfg.Zoom))
	s.poller.Wheel = cfg.Zoom.Enabled
	s.camera.PointerSpeed = cfg.Camera.PointerSpeed
}

// HandleLoad puts a finished load into the scene. A failed load is logged
// once and leaves the scene as it is.
func (s *Session) HandleLoad(res asset.Result) {
	if res.Err != nil {
		s.log.Error("failed to load model", "path", res.Path, "error", res.Err)
		return
	}

	if s.placeholder != nil {
		s.scene.Remove(s.placeholder)
		s.placeholder = nil
	}

	fc := s.cfg.Framing
	s.frameRes = framing.Frame(res.Model, framing.Options{
		Recenter:     fc.Recenter,
		MaxSize:      fc.MaxSize,
		PreScale:     fc.PreScale,
		FrameCamera:  fc.FrameCamera,
		HeightFactor: fc.HeightFactor,
		DepthFactor:  fc.DepthFactor,
	})
	if s.frameRes.Framed {
		p := s.frameRes.CameraPosition
		s.camera.SetPosition(p.X, p.Y, p.Z)
		s.camera.LookAt(s.frameRes.LookAt)
	}

	s.scene.Add(res.Model)
	s.model = res.Model
	s.loaded = true

	s.log.Info("model loaded",
		"path", res.Path,
		"faces", res.Model.FaceCount(),
		"center", s.frameRes.Center,
		"size", s.frameRes.Size,
		"scale", s.frameRes.Scale,
		"camera", s.camera.Position())
}

func (s *Session) Draw(screen *ebiten.Image) {
	screen.Fill(s.scene.Background)
	if s.active() {
		s.batcher.Begin(screen)
		s.renderer.Render(s.batcher, s.scene, s.camera)
		s.batcher.Flush()
	}
	s.overlay.Draw(screen)
}

func (s *Session) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Resize updates the camera aspect ratio and the renderer viewport.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.camera.Aspect = float64(width) / float64(height)
	s.camera.UpdateProjection()
	s.renderer.SetSize(width, height)
}

func (s *Session) Scene() *walkabout.Scene   { return s.scene }
func (s *Session) Camera() *walkabout.Camera { return s.camera }
func (s *Session) Tracker() *input.Tracker   { return s.tracker }
func (s *Session) Lock() *PointerLock        { return s.lock }
func (s *Session) Overlay() *Overlay         { return s.overlay }
func (s *Session) Loaded() bool              { return s.loaded }
func (s *Session) Model() *walkabout.Model   { return s.model }

// progressLogger reports load progress in quarter steps.
func (s *Session) progressLogger() func(read, total int64) {
	next := int64(25)
	return func(read, total int64) {
		if total <= 0 {
			return
		}
		pct := read * 100 / total
		if pct < next {
			return
		}
		s.log.Debug("loading model", "progress", pct)
		for next <= pct {
			next += 25
		}
	}
}

func newLight(l config.LightConfig) walkabout.Light {
	pos := walkabout.NewVector3(l.Position[0], l.Position[1], l.Position[2])
	switch l.Type {
	case config.LightDirectional:
		return walkabout.DirectionalLight{Color: l.Color.RGBA(), Intensity: l.Intensity, Position: pos}
	case config.LightHemisphere:
		return walkabout.HemisphereLight{Sky: l.Color.RGBA(), Ground: l.Ground.RGBA(), Intensity: l.Intensity, Position: pos}
	default:
		return walkabout.AmbientLight{Color: l.Color.RGBA(), Intensity: l.Intensity}
	}
}

func motionConfig(c config.MotionConfig) motion.Config {
	return motion.Config{Speed: c.Speed, Damping: c.Damping}
}

func zoomConfig(c config.ZoomConfig) input.ZoomConfig {
	return input.ZoomConfig{Speed: c.Speed, Min: c.Min, Max: c.Max}
}
