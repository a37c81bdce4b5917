package screens

import "flappy-fish/internal/scene"

// Loading shows a spinner while the next screen is prepared.
type Loading struct {
	base
	mat *scene.Object
	bar *scene.Object
}

func NewLoading() *Loading { return &Loading{} }

func (l *Loading) Init(env Env) error {
	l.setup(env, 1)

	l.mat = scene.NewObject(2, 2, scene.SpriteNormal, env.Aspect)
	mat, err := l.fullScreen("mat")
	if err != nil {
		return err
	}
	l.texture(StateNormal, scene.TextureSimple, mat, l.mat)
	if err := l.place(0, l.mat); err != nil {
		return err
	}

	// 800x100 cuts into eight square frames.
	l.bar = scene.NewObject(0.25, 0.25, scene.SpriteSquare, env.Aspect)
	l.bar.AnimateLoop(StateNormalAnimation)
	strip, err := l.image("loading")
	if err != nil {
		return err
	}
	l.texture(StateNormalAnimation, scene.TextureStrip, resize(strip, 800, 100), l.bar)
	return l.place(0, l.bar)
}
