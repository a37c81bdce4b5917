package renderer

import (
	"fmt"
	"time"

	"flappy-fish/internal/config"
	"flappy-fish/internal/logging"
	"flappy-fish/internal/profiling"
	"flappy-fish/internal/scene"
)

// Renderer drives one GL surface: it owns the device and the shared geometry
// buffers and hands each frame to the game.
type Renderer struct {
	dev       Device
	game      Frameable
	buf       *scene.Buffers
	capacity  int
	slowFrame time.Duration

	ready bool
	sized bool
}

func New(dev Device, g Frameable, settings config.RenderSettings) *Renderer {
	return &Renderer{
		dev:       dev,
		game:      g,
		capacity:  settings.BufferCapacity,
		slowFrame: settings.SlowFrame.Duration,
	}
}

// Init runs when the GL surface is created.
func (r *Renderer) Init() error {
	if err := r.dev.Init(r.capacity); err != nil {
		return fmt.Errorf("init device: %w", err)
	}
	r.buf = scene.NewBuffers(r.capacity)
	r.ready = true
	return nil
}

// Resize applies a new surface size. The first call also sets up the game.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.dev.Viewport(width, height)
	r.game.Resize(width, height)
	if r.sized {
		return nil
	}
	r.sized = true
	return r.game.Setup()
}

// Render draws one frame.
func (r *Renderer) Render(now time.Time) {
	if !r.ready {
		return
	}
	profiling.ResetFrame()
	start := time.Now()

	r.dev.Clear()
	if r.sized {
		stop := profiling.Track("renderer.Render")
		r.dev.BeginFrame()
		r.game.Frame(r.dev, r.buf, now)
		r.dev.EndFrame()
		stop()
	}

	if d := time.Since(start); r.slowFrame > 0 && d > r.slowFrame {
		logging.Warn("slow frame: %v, top: %s", d, profiling.TopN(3))
	}
}

// Dispose frees GPU resources. The renderer can be initialised again afterwards.
func (r *Renderer) Dispose() {
	if !r.ready {
		return
	}
	r.dev.Dispose()
	r.ready = false
}
