package screens

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/config"
	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

type fakeListener struct {
	mu                               sync.Mutex
	start, exit, menu, mistake, keys int
}

func (f *fakeListener) StartPressed() {
	f.mu.Lock()
	f.start++
	f.mu.Unlock()
}

func (f *fakeListener) ExitPressed() {
	f.mu.Lock()
	f.exit++
	f.mu.Unlock()
}

func (f *fakeListener) ReturnToMenu() {
	f.mu.Lock()
	f.menu++
	f.mu.Unlock()
}

func (f *fakeListener) LevelMistake() {
	f.mu.Lock()
	f.mistake++
	f.mu.Unlock()
}

func (f *fakeListener) KeyPressed() {
	f.mu.Lock()
	f.keys++
	f.mu.Unlock()
}

func (f *fakeListener) mistakes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mistake
}

func testEnv() (Env, *fakeListener, *audio.Recorder) {
	l := &fakeListener{}
	rec := &audio.Recorder{}
	return Env{
		Assets:   assets.Placeholders{},
		Audio:    rec,
		Listener: l,
		Aspect:   scene.UnitAspect,
		Surface:  input.Surface{Width: 48, Height: 80},
		Settings: config.Default(),
		Lives:    3,
	}, l, rec
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) < float64(eps)
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name         string
		x, y, deg    float32
		wantX, wantY float32
	}{
		{"idle step", -0.5, 0, -1, -0.4995, -0.0262},
		{"drag step", -0.5, 0, 0.7, -0.5001, 0.0183},
		{"zero", -0.5, 0.3, 0, -0.5, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Rotate(tt.x, tt.y, -2, 0, tt.deg)
			if !near(x, tt.wantX, 1e-3) || !near(y, tt.wantY, 1e-3) {
				t.Errorf("Rotate = (%v,%v), want ~(%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func newLevel(t *testing.T) (*Level, *fakeListener, *audio.Recorder) {
	t.Helper()
	env, l, rec := testEnv()
	lvl := NewLevel()
	if err := lvl.Init(env); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return lvl, l, rec
}

func TestLevelIdleUntilFirstTouch(t *testing.T) {
	lvl, _, _ := newLevel(t)
	lvl.step()
	if x, y := lvl.FishPosition(); x != -0.5 || y != 0 {
		t.Errorf("fish moved before first touch: (%v,%v)", x, y)
	}
}

func TestLevelTouchRisesThenSinks(t *testing.T) {
	lvl, _, rec := newLevel(t)
	lvl.Touch(input.Event{Action: input.ActionDown})
	if name, _, looped := lvl.Fish().AnimationState(); name != StateDrag || !looped {
		t.Errorf("animation after down = %q looped=%v", name, looped)
	}
	if rec.Count(audio.CueBubbles) != 1 {
		t.Errorf("bubbles cue not played")
	}

	lvl.step()
	_, y := lvl.FishPosition()
	if !near(y, 0.0183, 1e-3) {
		t.Errorf("y after drag step = %v, want ~0.0183", y)
	}

	lvl.Touch(input.Event{Action: input.ActionUp})
	if name, _, _ := lvl.Fish().AnimationState(); name != StateNormalAnimation {
		t.Errorf("animation after up = %q", name)
	}
	lvl.step()
	lvl.step()
	_, y2 := lvl.FishPosition()
	if y2 >= y {
		t.Errorf("fish did not sink: %v -> %v", y, y2)
	}
	sx, sy := lvl.Fish().Position()
	fx, fy := lvl.FishPosition()
	if sx != fx || sy != fy {
		t.Errorf("sprite (%v,%v) out of sync with sim (%v,%v)", sx, sy, fx, fy)
	}
}

func TestLevelUpperBoundRejectsMove(t *testing.T) {
	lvl, _, _ := newLevel(t)
	lvl.Touch(input.Event{Action: input.ActionDown})
	lvl.x, lvl.y = -0.5, 0.74
	lvl.step()
	if x, y := lvl.FishPosition(); x != -0.5 || y != 0.74 {
		t.Errorf("move past the top was accepted: (%v,%v)", x, y)
	}
}

func TestLevelMistakeResetsFish(t *testing.T) {
	lvl, l, _ := newLevel(t)
	lvl.Touch(input.Event{Action: input.ActionDown})
	lvl.Touch(input.Event{Action: input.ActionUp})
	lvl.x, lvl.y = -0.5, -0.84
	lvl.step()
	if x, y := lvl.FishPosition(); x != -0.5 || y != 0 {
		t.Errorf("fish not reset: (%v,%v)", x, y)
	}
	if l.mistakes() != 1 {
		t.Errorf("mistakes = %d, want 1", l.mistakes())
	}
}

func TestHolderRunsAndStopsSimulation(t *testing.T) {
	env, l, _ := testEnv()
	env.Settings.Level.Tick = config.D(time.Millisecond)
	lvl := NewLevel()
	h, err := NewHolder(lvl, env)
	if err != nil {
		t.Fatal(err)
	}
	lvl.Touch(input.Event{Action: input.ActionDown})
	lvl.Touch(input.Event{Action: input.ActionUp})

	h.Start(context.Background())
	h.Start(context.Background())
	deadline := time.Now().Add(5 * time.Second)
	for l.mistakes() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	if l.mistakes() == 0 {
		t.Fatal("simulation never reached the bottom")
	}
	x, y := lvl.FishPosition()
	time.Sleep(10 * time.Millisecond)
	if x2, y2 := lvl.FishPosition(); x2 != x || y2 != y {
		t.Error("fish moved after Stop")
	}
	h.Stop()
}

func TestMainMenuButtons(t *testing.T) {
	env, l, rec := testEnv()
	m := NewMainMenu()
	h, err := NewHolder(m, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(h.Templates()); got != 5 {
		t.Errorf("templates = %d, want 5", got)
	}
	if h.Scene().Len() != 3 {
		t.Errorf("objects = %d, want 3", h.Scene().Len())
	}

	h.Touch(input.Event{Action: input.ActionDown, X: 0.1, Y: 0.1})
	if m.start.obj.State() != StatePressed {
		t.Errorf("start state = %q after press", m.start.obj.State())
	}
	h.Touch(input.Event{Action: input.ActionUp, X: 0.1, Y: -0.1})
	if l.start != 1 || rec.Count(audio.CueClick) != 1 {
		t.Errorf("start=%d clicks=%d, want 1,1", l.start, rec.Count(audio.CueClick))
	}
	if m.start.obj.State() != StateNormal {
		t.Errorf("start state = %q after release", m.start.obj.State())
	}

	// press on exit, slide off, release: nothing fires
	h.Touch(input.Event{Action: input.ActionDown, X: 0.6, Y: 0.8})
	h.Touch(input.Event{Action: input.ActionUp, X: -0.9, Y: -0.9})
	if l.exit != 0 {
		t.Errorf("exit fired on release outside")
	}

	h.Touch(input.Event{Action: input.ActionDown, X: 0.65, Y: 0.85})
	h.Touch(input.Event{Action: input.ActionUp, X: 0.6, Y: 0.8})
	if l.exit != 1 {
		t.Errorf("exit = %d, want 1", l.exit)
	}

	// release inside without a press does nothing
	h.Touch(input.Event{Action: input.ActionUp, X: 0, Y: 0})
	if l.start != 1 {
		t.Errorf("start fired without press")
	}
}

func TestLoadingScreen(t *testing.T) {
	env, _, _ := testEnv()
	ld := NewLoading()
	if err := ld.Init(env); err != nil {
		t.Fatal(err)
	}
	tpls := ld.Textures()
	if len(tpls) != 2 {
		t.Fatalf("templates = %d, want 2", len(tpls))
	}
	strip := tpls[1]
	if strip.Kind != scene.TextureStrip || strip.FrameCount() != 8 {
		t.Errorf("loading strip kind=%v frames=%d, want strip/8", strip.Kind, strip.FrameCount())
	}
	mat := tpls[0].Image.Bounds()
	if mat.Dx() != 48 || mat.Dy() != 80 {
		t.Errorf("mat not scaled to surface: %v", mat)
	}
	if name, _, looped := ld.bar.AnimationState(); name != StateNormalAnimation || !looped {
		t.Errorf("bar animation = %q looped=%v", name, looped)
	}
}

func TestUpBarLivesAndFlash(t *testing.T) {
	env, l, rec := testEnv()
	env.Lives = 2
	u := NewUpBar()
	h, err := NewHolder(u, env)
	if err != nil {
		t.Fatal(err)
	}
	if u.Hearts() != 2 {
		t.Errorf("hearts = %d, want 2", u.Hearts())
	}
	if h.Scene().LayerCount() != 2 || h.Scene().Layer(1).Len() != 1 {
		t.Errorf("red overlay should be alone in layer 1")
	}

	u.SetLives(1, true)
	if u.Hearts() != 1 || !u.FailVisible() {
		t.Errorf("hearts=%d fail=%v", u.Hearts(), u.FailVisible())
	}
	if rec.Count(audio.CueMistake) != 1 {
		t.Errorf("mistake cue not played")
	}

	now := time.Now()
	u.BeforeDraw(now.Add(100 * time.Millisecond))
	if !u.FailVisible() {
		t.Error("flash hidden too early")
	}
	u.BeforeDraw(now.Add(time.Second))
	if u.FailVisible() {
		t.Error("flash still visible after 1s")
	}

	u.SetLives(0, false)
	if u.Hearts() != 0 || u.FailVisible() {
		t.Errorf("hearts=%d fail=%v", u.Hearts(), u.FailVisible())
	}

	h.Touch(input.Event{Action: input.ActionDown, X: 0.85, Y: 0.9})
	h.Touch(input.Event{Action: input.ActionUp, X: 0.85, Y: 0.9})
	h.Touch(input.Event{Action: input.ActionDown, X: 0.55, Y: 0.9})
	h.Touch(input.Event{Action: input.ActionUp, X: 0.55, Y: 0.9})
	if l.menu != 1 || l.keys != 1 {
		t.Errorf("menu=%d keys=%d, want 1,1", l.menu, l.keys)
	}
}

func TestLevelTemplates(t *testing.T) {
	lvl, _, _ := newLevel(t)
	tpls := lvl.Textures()
	if len(tpls) != 4 {
		t.Fatalf("templates = %d, want 4", len(tpls))
	}
	for _, tpl := range tpls[1:] {
		if len(tpl.Owners) != 1 || !tpl.Owners[0].Equal(lvl.Fish()) {
			t.Errorf("%s not owned by the fish", tpl.Name)
		}
	}
	if tpls[2].FrameCount() != 4 || tpls[3].FrameCount() != 4 {
		t.Errorf("fish strips should have 4 frames")
	}
}
