//go:build android

// Package mobile runs the game inside an Android activity.
package mobile

import (
	"time"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"flappy-fish/internal/graphics"
	"flappy-fish/internal/host"
	"flappy-fish/internal/input"
	"flappy-fish/internal/logging"
)

var touchActions = map[touch.Type]input.Action{
	touch.TypeBegin: input.ActionDown,
	touch.TypeMove:  input.ActionMove,
	touch.TypeEnd:   input.ActionUp,
}

// Run hands control to the Android activity. A session lives while the
// surface is visible; going to the background drops it with the GL context.
func Run(opts host.Options) error {
	app.Main(func(a app.App) {
		var s *host.Session
		var sz size.Event

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					ctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					var err error
					s, err = host.NewSession(opts, graphics.NewGLESDevice(ctx), func() {})
					if err != nil {
						logging.Error("start session: %v", err)
						return
					}
					if err := s.Renderer.Resize(sz.WidthPx, sz.HeightPx); err != nil {
						logging.Error("resize: %v", err)
						return
					}
					opts.Audio.StartAmbient()
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					opts.Audio.StopAmbient()
					if s != nil {
						s.Close()
						s = nil
					}
				}
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				if s != nil {
					if err := s.Renderer.Resize(e.WidthPx, e.HeightPx); err != nil {
						logging.Error("resize: %v", err)
						return
					}
				}

			case touch.Event:
				action, ok := touchActions[e.Type]
				if s == nil || !ok {
					continue
				}
				s.Game.Touch(input.Pointer{Action: action, X: e.X, Y: e.Y})

			case paint.Event:
				if s == nil || e.External {
					continue
				}
				s.Renderer.Render(time.Now())
				if err := s.Game.Err(); err != nil {
					logging.Error("game: %v", err)
					return
				}
				a.Publish()
				a.Send(paint.Event{})
			}
		}
	})
	return nil
}
