package screens

import (
	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

// MainMenu has a start and an exit button over a full screen mat.
type MainMenu struct {
	base
	mat   *scene.Object
	start *button
	exit  *button
}

func NewMainMenu() *MainMenu { return &MainMenu{} }

func (m *MainMenu) Init(env Env) error {
	m.setup(env, 1)

	m.mat = scene.NewObject(2, 2, scene.SpriteNormal, env.Aspect)
	mat, err := m.fullScreen("mat")
	if err != nil {
		return err
	}
	m.texture(StateNormal, scene.TextureSimple, mat, m.mat)
	if err := m.place(0, m.mat); err != nil {
		return err
	}

	if m.start, err = m.newButton(0.7, 0, 0, "start_button", "start_button_pressed", env.Listener.StartPressed); err != nil {
		return err
	}
	if err := m.place(0, m.start.obj); err != nil {
		return err
	}
	if m.exit, err = m.newButton(0.3, 0.6, 0.8, "exit_button", "exit_button_pressed", env.Listener.ExitPressed); err != nil {
		return err
	}
	return m.place(0, m.exit.obj)
}

func (m *MainMenu) Touch(ev input.Event) {
	touchButtons(ev, m.env.Audio, m.start, m.exit)
}
