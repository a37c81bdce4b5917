//go:build !android

// Package desktop runs the game in a glfw window with a mouse standing in
// for touch.
package desktop

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"flappy-fish/internal/config"
	"flappy-fish/internal/graphics"
	"flappy-fish/internal/host"
	"flappy-fish/internal/input"
	"flappy-fish/internal/logging"
)

func setupWindow(cfg config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// paced by FPSLimiter
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	return window, nil
}

// Run opens a window and drives the game until it is closed. It must be
// called from the main OS thread.
func Run(opts host.Options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(opts.Settings.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	s, err := host.NewSession(opts, graphics.NewGLDevice(), func() {
		window.SetShouldClose(true)
	})
	if err != nil {
		return err
	}
	defer s.Close()

	fbw, fbh := window.GetFramebufferSize()
	if err := s.Renderer.Resize(fbw, fbh); err != nil {
		return err
	}

	// glfw reports resizes from PollEvents on this thread
	var resizeErr error
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if err := s.Renderer.Resize(w, h); err != nil && resizeErr == nil {
			resizeErr = err
		}
	})

	var tracker input.Tracker
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		px, py := cursorToPixels(w, x, y)
		if p, ok := tracker.Moved(px, py); ok {
			s.Game.Touch(p)
		}
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			s.Game.Touch(tracker.Press())
		case glfw.Release:
			if p, ok := tracker.Release(); ok {
				s.Game.Touch(p)
			}
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	focused := true
	window.SetFocusCallback(func(_ *glfw.Window, f bool) {
		focused = f
		if f {
			opts.Audio.StartAmbient()
		} else {
			opts.Audio.StopAmbient()
		}
	})

	opts.Audio.StartAmbient()
	defer opts.Audio.StopAmbient()

	logging.Info("window %dx%d (framebuffer %dx%d)", opts.Settings.Window.Width, opts.Settings.Window.Height, fbw, fbh)

	limiter := host.NewFPSLimiter()
	for !window.ShouldClose() {
		s.Renderer.Render(time.Now())
		window.SwapBuffers()
		glfw.PollEvents()
		if resizeErr != nil {
			return resizeErr
		}
		if err := s.Game.Err(); err != nil {
			return err
		}
		limiter.Wait(!focused)
	}
	return nil
}

// cursorToPixels maps window coordinates to framebuffer pixels, which differ
// on high density displays.
func cursorToPixels(w *glfw.Window, x, y float64) (float32, float32) {
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	if ww <= 0 || wh <= 0 {
		return float32(x), float32(y)
	}
	return float32(x * float64(fw) / float64(ww)), float32(y * float64(fh) / float64(wh))
}
