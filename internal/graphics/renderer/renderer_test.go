package renderer

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"flappy-fish/internal/config"
	"flappy-fish/internal/game"
	"flappy-fish/internal/scene"
)

type fakeDevice struct {
	initErr   error
	capacity  int
	viewports [][2]int
	clears    int
	begins    int
	ends      int
	draws     int
	textures  uint32
	disposed  bool
}

func (d *fakeDevice) Init(capacity int) error {
	d.capacity = capacity
	return d.initErr
}

func (d *fakeDevice) Viewport(w, h int)                { d.viewports = append(d.viewports, [2]int{w, h}) }
func (d *fakeDevice) Clear()                           { d.clears++ }
func (d *fakeDevice) UploadGeometry(v, t []float32)    {}
func (d *fakeDevice) DeleteTextures(ids []uint32)      {}
func (d *fakeDevice) BeginFrame()                      { d.begins++ }
func (d *fakeDevice) EndFrame()                        { d.ends++ }
func (d *fakeDevice) DrawQuad(uint32, mgl32.Mat4, int) { d.draws++ }
func (d *fakeDevice) Dispose()                         { d.disposed = true }

func (d *fakeDevice) CreateTexture(*image.RGBA) (uint32, error) {
	d.textures++
	return d.textures, nil
}

type fakeGame struct {
	sizes  [][2]int
	setups int
	frames int
}

func (g *fakeGame) Resize(w, h int) { g.sizes = append(g.sizes, [2]int{w, h}) }

func (g *fakeGame) Setup() error {
	g.setups++
	return nil
}

func (g *fakeGame) Frame(dev game.Device, buf *scene.Buffers, now time.Time) {
	g.frames++
	dev.DrawQuad(1, mgl32.Ident4(), 0)
}

func TestInitFailure(t *testing.T) {
	dev := &fakeDevice{initErr: errors.New("no GL")}
	r := New(dev, &fakeGame{}, config.Default().Render)
	if err := r.Init(); err == nil {
		t.Fatal("expected init error")
	}
	r.Render(time.Now())
	if dev.clears != 0 {
		t.Error("rendered without a device")
	}
}

func TestSetupOnFirstResizeOnly(t *testing.T) {
	dev := &fakeDevice{}
	g := &fakeGame{}
	r := New(dev, g, config.Default().Render)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if dev.capacity != 60000 {
		t.Errorf("capacity = %d", dev.capacity)
	}

	r.Render(time.Now())
	if dev.clears != 1 || g.frames != 0 {
		t.Errorf("before resize: clears=%d frames=%d", dev.clears, g.frames)
	}

	_ = r.Resize(0, 0)
	_ = r.Resize(480, 800)
	_ = r.Resize(800, 480)
	if g.setups != 1 {
		t.Errorf("setups = %d, want 1", g.setups)
	}
	if len(g.sizes) != 2 || len(dev.viewports) != 2 {
		t.Errorf("sizes = %v viewports = %v", g.sizes, dev.viewports)
	}

	r.Render(time.Now())
	if g.frames != 1 || dev.begins != 1 || dev.ends != 1 || dev.draws != 1 {
		t.Errorf("frames=%d begins=%d ends=%d draws=%d", g.frames, dev.begins, dev.ends, dev.draws)
	}

	r.Dispose()
	if !dev.disposed {
		t.Error("device not disposed")
	}
	r.Render(time.Now())
	if g.frames != 1 {
		t.Error("rendered after dispose")
	}
}

func TestRendersRealGame(t *testing.T) {
	s := config.Default()
	s.Game.TransitionFloor = config.D(time.Hour)
	g := game.New(game.Options{Settings: s})
	defer g.Close()

	dev := &fakeDevice{}
	r := New(dev, g, s.Render)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(480, 800); err != nil {
		t.Fatal(err)
	}
	r.Render(time.Now())
	if dev.textures != 9 || dev.draws != 2 {
		t.Errorf("loading frame: textures=%d draws=%d", dev.textures, dev.draws)
	}
}
