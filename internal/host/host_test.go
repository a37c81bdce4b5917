package host

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"flappy-fish/internal/config"
	"flappy-fish/internal/game"
)

type fakeDevice struct {
	initErr  error
	textures uint32
	draws    int
	disposed bool
}

func (d *fakeDevice) Init(int) error                      { return d.initErr }
func (d *fakeDevice) Viewport(int, int)                   {}
func (d *fakeDevice) Clear()                              {}
func (d *fakeDevice) UploadGeometry([]float32, []float32) {}
func (d *fakeDevice) DeleteTextures([]uint32)             {}
func (d *fakeDevice) BeginFrame()                         {}
func (d *fakeDevice) EndFrame()                           {}
func (d *fakeDevice) DrawQuad(uint32, mgl32.Mat4, int)    { d.draws++ }
func (d *fakeDevice) Dispose()                            { d.disposed = true }

func (d *fakeDevice) CreateTexture(*image.RGBA) (uint32, error) {
	d.textures++
	return d.textures, nil
}

func testOptions() Options {
	s := config.Default()
	s.Game.TransitionFloor = config.D(time.Hour)
	return Options{Settings: s}
}

func TestSessionDrawsLoadingScreen(t *testing.T) {
	dev := &fakeDevice{}
	s, err := NewSession(testOptions(), dev, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Renderer.Resize(480, 800); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	s.Renderer.Render(time.Now())
	if s.Game.State() != game.StateLoading {
		t.Errorf("state = %v, want loading", s.Game.State())
	}
	if dev.draws != 2 {
		t.Errorf("draws = %d, want 2", dev.draws)
	}

	s.Close()
	if !dev.disposed {
		t.Error("device not disposed")
	}
}

func TestSessionInitFailure(t *testing.T) {
	dev := &fakeDevice{initErr: errors.New("no context")}
	if _, err := NewSession(testOptions(), dev, nil); err == nil {
		t.Fatal("expected error")
	}
}

func fixedLimit(n int) func() int {
	return func() int { return n }
}

func TestFPSLimiterSchedule(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(50)}
	start := time.Unix(0, 0)

	if d := f.delay(start, false); d != 20*time.Millisecond {
		t.Errorf("first delay = %v, want 20ms", d)
	}
	// the previous frame took 5ms of its 20ms slot
	if d := f.delay(start.Add(25*time.Millisecond), false); d != 15*time.Millisecond {
		t.Errorf("second delay = %v, want 15ms", d)
	}
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(100)}
	start := time.Unix(0, 0)
	f.delay(start, false)

	hitch := start.Add(time.Second)
	if d := f.delay(hitch, false); d != 10*time.Millisecond {
		t.Errorf("delay after hitch = %v, want a full 10ms frame", d)
	}
}

func TestFPSLimiterUnlimited(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(0)}
	if d := f.delay(time.Now(), false); d != 0 {
		t.Errorf("delay = %v, want 0", d)
	}
	if !f.next.IsZero() {
		t.Error("schedule kept with no limit")
	}
}

func TestFPSLimiterUnfocusedCap(t *testing.T) {
	tests := []struct {
		limit int
		want  time.Duration
	}{
		{0, time.Second / unfocusedFPS},
		{144, time.Second / unfocusedFPS},
		{20, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		f := &FPSLimiter{limit: fixedLimit(tt.limit)}
		if d := f.delay(time.Unix(0, 0), true); d != tt.want {
			t.Errorf("limit %d unfocused: delay = %v, want %v", tt.limit, d, tt.want)
		}
	}
}
