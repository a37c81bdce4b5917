// Package screens builds the individual game screens on top of the scene graph.
package screens

import (
	"context"
	"fmt"
	"image"
	"time"

	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/config"
	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

// Object states and animation names shared by the screens.
const (
	StateNormal          = "normal"
	StateNormalAnimation = "normal_animation"
	StateDrag            = "drag"
	StatePressed         = "press"
)

// Listener receives the events screens raise towards the game.
type Listener interface {
	StartPressed()
	ExitPressed()
	ReturnToMenu()
	LevelMistake()
	KeyPressed()
}

// Env is everything a handler needs to build its scene.
type Env struct {
	Assets   assets.Source
	Audio    audio.Player
	Listener Listener
	Aspect   scene.Aspect
	Surface  input.Surface
	Settings config.Settings
	Lives    int
	Coins    int
}

// Handler is one screen: it builds a scene, reacts to touches and may run a
// background simulation while it is active.
type Handler interface {
	Init(env Env) error
	Scene() *scene.Scene
	Textures() []scene.TextureTemplate
	BeforeDraw(now time.Time)
	AfterDraw(now time.Time)
	Touch(ev input.Event)
	Simulate(ctx context.Context)
}

// base carries the bookkeeping common to every handler.
type base struct {
	env       Env
	scene     *scene.Scene
	templates []scene.TextureTemplate
}

func (b *base) Scene() *scene.Scene               { return b.scene }
func (b *base) Textures() []scene.TextureTemplate { return b.templates }
func (b *base) BeforeDraw(time.Time)              {}
func (b *base) AfterDraw(time.Time)               {}
func (b *base) Touch(input.Event)                 {}
func (b *base) Simulate(context.Context)          {}

func (b *base) setup(env Env, layers int) {
	b.env = env
	b.scene = scene.New(layers)
	b.templates = nil
}

func (b *base) image(name string) (*image.RGBA, error) {
	return assets.Load(b.env.Assets, name)
}

// fullScreen loads name scaled to the surface size.
func (b *base) fullScreen(name string) (*image.RGBA, error) {
	img, err := b.image(name)
	if err != nil || !b.env.Surface.Valid() {
		return img, err
	}
	return assets.Resize(img, b.env.Surface.Width, b.env.Surface.Height), nil
}

func (b *base) texture(state string, kind scene.TextureKind, img *image.RGBA, owners ...*scene.Object) {
	b.templates = append(b.templates, scene.NewTextureTemplate(state, kind, img, owners...))
}

// place adds obj to a layer; layers are fixed per screen so a failure is a programming error.
func (b *base) place(layer int, obj *scene.Object) error {
	if err := b.scene.AddToLayer(layer, obj); err != nil {
		return fmt.Errorf("place object: %w", err)
	}
	return nil
}

// button is a two state sprite fired on release inside its bounds after a press inside.
type button struct {
	obj     *scene.Object
	pressed bool
	fire    func()
}

func (b *base) newButton(size, x, y float32, normal, pressed string, fire func()) (*button, error) {
	obj := scene.NewObject(size, size, scene.SpriteSquare, b.env.Aspect)
	obj.SetPosition(x, y)
	up, err := b.image(normal)
	if err != nil {
		return nil, err
	}
	down, err := b.image(pressed)
	if err != nil {
		return nil, err
	}
	b.texture(StateNormal, scene.TextureSimple, up, obj)
	b.texture(StatePressed, scene.TextureSimple, down, obj)
	return &button{obj: obj, fire: fire}, nil
}

// touchButtons presses at most one button on down and fires it on an up inside it.
func touchButtons(ev input.Event, player audio.Player, buttons ...*button) {
	switch ev.Action {
	case input.ActionDown:
		for _, b := range buttons {
			if b.obj.IsInside(ev.X, ev.Y) {
				b.obj.SetState(StatePressed)
				b.pressed = true
				return
			}
		}
	case input.ActionUp:
		var fired *button
		for _, b := range buttons {
			b.obj.SetState(StateNormal)
			if fired == nil && b.pressed && b.obj.IsInside(ev.X, ev.Y) {
				fired = b
			}
			b.pressed = false
		}
		if fired != nil {
			player.Play(audio.CueClick)
			fired.fire()
		}
	}
}

func resize(img *image.RGBA, w, h int) *image.RGBA {
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	return assets.Resize(img, w, h)
}
