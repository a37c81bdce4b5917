// Package host holds what the platform loops share. The desktop and mobile
// subpackages own the windows.
package host

import (
	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/config"
	"flappy-fish/internal/game"
	"flappy-fish/internal/graphics/renderer"
)

// Options carries what every host needs to run the game.
type Options struct {
	Settings config.Settings
	Assets   assets.Source
	Audio    audio.Player
}

// Session couples one game with the renderer drawing it. Textures belong to
// the GL context, so a lost context ends the session.
type Session struct {
	Game     *game.Game
	Renderer *renderer.Renderer
}

// NewSession creates the game and initialises dev. It must run on the thread
// owning the GL context.
func NewSession(opts Options, dev renderer.Device, onExit func()) (*Session, error) {
	g := game.New(game.Options{
		Settings: opts.Settings,
		Assets:   opts.Assets,
		Audio:    opts.Audio,
		OnExit:   onExit,
	})
	r := renderer.New(dev, g, opts.Settings.Render)
	if err := r.Init(); err != nil {
		g.Close()
		return nil, err
	}
	return &Session{Game: g, Renderer: r}, nil
}

// Close stops the game and frees the GPU resources.
func (s *Session) Close() {
	s.Game.Close()
	s.Renderer.Dispose()
}
