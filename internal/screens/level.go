package screens

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"flappy-fish/internal/audio"
	"flappy-fish/internal/config"
	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

// Level is the swimming screen. The fish orbits a pivot off screen to the
// left: it sinks while idle and rises while the screen is held.
type Level struct {
	base
	mat  *scene.Object
	fish *scene.Object

	cfg config.LevelSettings

	touched      atomic.Bool
	firstTouched atomic.Bool

	mu   sync.Mutex
	x, y float32
}

func NewLevel() *Level { return &Level{} }

func (l *Level) Init(env Env) error {
	l.setup(env, 1)
	l.cfg = env.Settings.Level
	l.x, l.y = l.cfg.StartX, l.cfg.StartY

	l.mat = scene.NewObject(2, 2, scene.SpriteNormal, env.Aspect)
	mat, err := l.image("level_mat")
	if err != nil {
		return err
	}
	l.texture(StateNormal, scene.TextureSimple, mat, l.mat)
	if err := l.place(0, l.mat); err != nil {
		return err
	}

	l.fish = scene.NewObject(0.25, 0.25, scene.SpriteSquare, env.Aspect)
	l.fish.SetPosition(l.x, l.y)
	for _, t := range []struct {
		state, asset string
		kind         scene.TextureKind
	}{
		{StateNormal, "penguin_red", scene.TextureSimple},
		{StateNormalAnimation, "penguin_red_animation1", scene.TextureStrip},
		{StateDrag, "penguin_red_animation2", scene.TextureStrip},
	} {
		img, err := l.image(t.asset)
		if err != nil {
			return err
		}
		l.texture(t.state, t.kind, img, l.fish)
	}
	return l.place(0, l.fish)
}

func (l *Level) Fish() *scene.Object { return l.fish }

func (l *Level) Touch(ev input.Event) {
	switch ev.Action {
	case input.ActionDown:
		l.firstTouched.Store(true)
		l.touched.Store(true)
		l.fish.AnimateLoop(StateDrag)
		l.env.Audio.Play(audio.CueBubbles)
	case input.ActionUp:
		l.touched.Store(false)
		l.fish.AnimateLoop(StateNormalAnimation)
	}
}

// Simulate steps the fish every tick until ctx is cancelled.
func (l *Level) Simulate(ctx context.Context) {
	tick := l.cfg.Tick.Duration
	if tick <= 0 {
		tick = 30 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.step()
		}
	}
}

// step advances the fish by one tick. Nothing moves before the first touch.
func (l *Level) step() {
	if !l.firstTouched.Load() {
		return
	}
	angle := l.cfg.IdleStep
	if l.touched.Load() {
		angle = l.cfg.DragStep
	}

	l.mu.Lock()
	nx, ny := Rotate(l.x, l.y, l.cfg.PivotX, l.cfg.PivotY, angle)
	if l.cfg.LowerBound < ny && ny < l.cfg.UpperBound {
		l.x, l.y = nx, ny
		l.fish.SetPosition(l.x, l.y)
	}
	mistake := ny < l.cfg.MistakeBound
	if mistake {
		l.x, l.y = l.cfg.StartX, l.cfg.StartY
		l.fish.SetPosition(l.x, l.y)
	}
	l.mu.Unlock()

	if mistake {
		l.env.Listener.LevelMistake()
	}
}

// FishPosition is the simulated position, which the sprite mirrors.
func (l *Level) FishPosition() (float32, float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.x, l.y
}

// Rotate turns (x,y) around (cx,cy) by degrees, counter clockwise for positive angles.
func Rotate(x, y, cx, cy, degrees float32) (float32, float32) {
	v := mgl32.Rotate2D(mgl32.DegToRad(degrees)).Mul2x1(mgl32.Vec2{x - cx, y - cy})
	return cx + v.X(), cy + v.Y()
}
