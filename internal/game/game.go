package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/config"
	"flappy-fish/internal/input"
	"flappy-fish/internal/logging"
	"flappy-fish/internal/profiling"
	"flappy-fish/internal/scene"
	"flappy-fish/internal/screens"
)

// Device is the slice of the GPU the game drives each frame.
type Device interface {
	scene.Painter
	Uploader
	UploadGeometry(vertices, texCoords []float32)
}

// Options configures a Game.
type Options struct {
	Settings config.Settings
	Assets   assets.Source
	Audio    audio.Player
	// OnExit is called when the player presses the exit button.
	OnExit func()
}

// Game owns the screen state machine. The render thread calls Frame, the
// host calls Touch, and transitions build screens on their own goroutines.
type Game struct {
	settings config.Settings
	assets   assets.Source
	audio    audio.Player
	onExit   func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State
	dirty     bool
	inFlight  bool
	setup     bool
	loading   *screens.Holder
	menu      *screens.Holder
	level     *screens.Holder
	upBar     *screens.Holder
	hud       *screens.UpBar
	templates []scene.TextureTemplate
	release   []uint32
	aspect    scene.Aspect
	surface   input.Surface
	lives     int
	coins     int
	err       error

	// loading screen uploads, pending until the first dirty frame
	loadingTemplates []scene.TextureTemplate
}

func New(opts Options) *Game {
	if opts.Assets == nil {
		opts.Assets = assets.Placeholders{}
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.OnExit == nil {
		opts.OnExit = func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Game{
		settings: opts.Settings,
		assets:   opts.Assets,
		audio:    opts.Audio,
		onExit:   opts.OnExit,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateLoading,
		aspect:   scene.UnitAspect,
		lives:    opts.Settings.Game.MaxLives,
		coins:    opts.Settings.Game.StartCoins,
	}
}

// Resize records the surface size and the aspect factors for square sprites.
// Screens built afterwards use the new values.
func (g *Game) Resize(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.surface = input.Surface{Width: width, Height: height}
	g.aspect = scene.AspectFor(width, height)
}

// Setup builds the loading screen synchronously and starts loading the main
// menu. It only runs once.
func (g *Game) Setup() error {
	g.mu.Lock()
	if g.setup {
		g.mu.Unlock()
		return nil
	}
	env := g.envLocked()
	g.mu.Unlock()

	loading, err := screens.NewHolder(screens.NewLoading(), env)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.setup = true
	g.loading = loading
	g.loadingTemplates = loading.Templates()
	g.state = StateLoading
	g.dirty = true
	g.mu.Unlock()

	return g.transition(StateMainMenu)
}

func (g *Game) envLocked() screens.Env {
	return screens.Env{
		Assets:   g.assets,
		Audio:    g.audio,
		Listener: g,
		Aspect:   g.aspect,
		Surface:  g.surface,
		Settings: g.settings,
		Lives:    g.lives,
		Coins:    g.coins,
	}
}

// State reports the committed state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Busy reports whether a transition is still building its screens.
func (g *Game) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// Err returns the last transition failure, if any.
func (g *Game) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Game) Lives() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lives
}

func (g *Game) Coins() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.coins
}

// transition flips the game to Loading, detaches the current screens and
// builds target in the background.
func (g *Game) transition(target State) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return ErrTransitionInFlight
	}
	if !canTransition(g.state, target) {
		return ErrIllegalTransition
	}

	var detached []*screens.Holder
	for _, h := range []*screens.Holder{g.menu, g.level, g.upBar} {
		if h != nil {
			detached = append(detached, h)
		}
	}
	g.menu, g.level, g.upBar, g.hud = nil, nil, nil, nil
	// uploads still pending belong to the detached screens
	g.templates = nil
	g.state = StateLoading
	g.dirty = true
	g.inFlight = true
	g.err = nil

	t := &transitionJob{
		id:       uuid.NewString(),
		target:   target,
		started:  time.Now(),
		detached: detached,
		env:      g.envLocked(),
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.run(t)
	}()
	return nil
}

type transitionJob struct {
	id       string
	target   State
	started  time.Time
	detached []*screens.Holder
	env      screens.Env
}

// built is what a transition hands to the render thread on commit.
type built struct {
	menu, level, upBar *screens.Holder
	hud                *screens.UpBar
}

func (b built) holders() []*screens.Holder {
	var hs []*screens.Holder
	for _, h := range []*screens.Holder{b.menu, b.level, b.upBar} {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return hs
}

func (g *Game) run(t *transitionJob) {
	log := logging.With("transition", t.id, "target", t.target)
	log.Info("transition started")

	var release []uint32
	for _, h := range t.detached {
		h.Stop()
		release = append(release, h.TextureIDs()...)
	}

	b, err := g.build(t)
	if err != nil {
		log.Error("build screens", "err", err)
		g.fail(release, err)
		return
	}
	if b.level != nil {
		b.level.Start(g.ctx)
	}

	if wait := g.settings.Game.TransitionFloor.Duration - time.Since(t.started); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-g.ctx.Done():
			timer.Stop()
			for _, h := range b.holders() {
				h.Stop()
			}
			log.Debug("transition cancelled")
			return
		case <-timer.C:
		}
	}

	var templates []scene.TextureTemplate
	for _, h := range b.holders() {
		templates = append(templates, h.Templates()...)
	}

	g.mu.Lock()
	g.state = t.target
	g.dirty = true
	g.inFlight = false
	g.menu, g.level, g.upBar, g.hud = b.menu, b.level, b.upBar, b.hud
	g.templates = templates
	g.release = append(g.release, release...)
	g.mu.Unlock()

	log.Info("transition committed", "took", time.Since(t.started).Round(time.Millisecond), "released", len(release))
}

// build creates the target screens. Level and UpBar are built concurrently.
func (g *Game) build(t *transitionJob) (built, error) {
	var b built
	switch t.target {
	case StateMainMenu:
		h, err := screens.NewHolder(screens.NewMainMenu(), t.env)
		if err != nil {
			return b, err
		}
		b.menu = h
	case StateLevel:
		hud := screens.NewUpBar()
		var eg errgroup.Group
		eg.Go(func() error {
			h, err := screens.NewHolder(screens.NewLevel(), t.env)
			b.level = h
			return err
		})
		eg.Go(func() error {
			h, err := screens.NewHolder(hud, t.env)
			b.upBar = h
			return err
		})
		if err := eg.Wait(); err != nil {
			return built{}, err
		}
		b.hud = hud
	default:
		return b, ErrIllegalTransition
	}
	return b, nil
}

// fail leaves the game on the loading screen so the host can surface Err.
func (g *Game) fail(release []uint32, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
	g.dirty = true
	g.release = append(g.release, release...)
	g.err = err
}

// activeLocked lists the holders drawn for the committed state, in paint order.
func (g *Game) activeLocked() []*screens.Holder {
	switch g.state {
	case StateMainMenu:
		return []*screens.Holder{g.menu}
	case StateLevel:
		return []*screens.Holder{g.level, g.upBar}
	default:
		if g.loading == nil {
			return nil
		}
		return []*screens.Holder{g.loading}
	}
}

// Frame repacks geometry and services texture work when the state changed,
// then draws the active screens. It holds the game lock throughout so a
// commit never lands between the check and the draw.
func (g *Game) Frame(dev Device, buf *scene.Buffers, now time.Time) {
	defer profiling.Track("game.Frame")()
	g.mu.Lock()
	defer g.mu.Unlock()

	active := g.activeLocked()
	if g.dirty {
		buf.Reset()
		offset := 0
		for _, h := range active {
			var err error
			if offset, err = h.Pack(buf, offset); err != nil {
				logging.Error("pack %s: %v", g.state, err)
				break
			}
		}
		dev.UploadGeometry(buf.Used())

		if len(g.release) > 0 {
			dev.DeleteTextures(g.release)
			g.release = nil
		}
		loadTextures(dev, g.loadingTemplates)
		loadTextures(dev, g.templates)
		g.loadingTemplates, g.templates = nil, nil
		g.dirty = false
	}

	f := scene.Frame{Painter: dev, Now: now, FrameDelay: g.settings.Scene.FrameDelay.Duration}
	for _, h := range active {
		h.Draw(f)
	}
}

// Touch converts a pixel pointer to device coordinates and hands it to the
// active screens. Handlers run outside the game lock since they may start
// transitions.
func (g *Game) Touch(p input.Pointer) {
	g.mu.Lock()
	ev := g.surface.Translate(p)
	var targets []*screens.Holder
	switch g.state {
	case StateMainMenu:
		targets = []*screens.Holder{g.menu}
	case StateLevel:
		targets = []*screens.Holder{g.level, g.upBar}
	}
	g.mu.Unlock()

	for _, h := range targets {
		if h != nil {
			h.Touch(ev)
		}
	}
}

func (g *Game) StartPressed() {
	if err := g.transition(StateLevel); err != nil {
		logging.Warn("start level: %v", err)
	}
}

func (g *Game) ReturnToMenu() {
	if err := g.transition(StateMainMenu); err != nil {
		logging.Warn("return to menu: %v", err)
	}
}

func (g *Game) ExitPressed() {
	logging.Info("exit requested")
	g.onExit()
}

func (g *Game) KeyPressed() {
	logging.Debug("key pressed")
}

// LevelMistake costs a life, clamped at zero, and updates the HUD.
func (g *Game) LevelMistake() {
	g.mu.Lock()
	prev := g.lives
	g.lives = max(0, min(g.lives-1, g.settings.Game.MaxLives))
	lives, hud := g.lives, g.hud
	g.mu.Unlock()

	logging.Debug("level mistake, lives %d -> %d", prev, lives)
	if hud != nil {
		hud.SetLives(lives, prev > lives)
	}
}

// Close cancels an in-flight transition and stops any running simulation.
func (g *Game) Close() {
	g.cancel()
	g.wg.Wait()

	g.mu.Lock()
	holders := []*screens.Holder{g.menu, g.level, g.upBar}
	g.mu.Unlock()
	for _, h := range holders {
		if h != nil {
			h.Stop()
		}
	}
}
