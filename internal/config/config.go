package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable that points at an optional settings file.
const EnvPath = "FLAPPY_FISH_CONFIG"

// Duration wraps time.Duration so settings files can use "150ms" style strings.
type Duration struct {
	time.Duration
}

// D builds a Duration.
func D(d time.Duration) Duration { return Duration{d} }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

type LogSettings struct {
	Level string `toml:"level"`
}

type WindowSettings struct {
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	FPSLimit int    `toml:"fps_limit"` // 0 disables the limiter
}

// RenderSettings sizes the shared device buffers (floats per buffer).
type RenderSettings struct {
	BufferCapacity int      `toml:"buffer_capacity"`
	SlowFrame      Duration `toml:"slow_frame"`
}

type SceneSettings struct {
	FrameDelay Duration `toml:"frame_delay"`
}

type GameSettings struct {
	TransitionFloor Duration `toml:"transition_floor"`
	MaxLives        int      `toml:"max_lives"`
	StartCoins      int      `toml:"start_coins"`
}

// LevelSettings tunes the fish-on-a-leash simulation.
type LevelSettings struct {
	Tick         Duration `toml:"tick"`
	IdleStep     float32  `toml:"idle_step"` // degrees per tick
	DragStep     float32  `toml:"drag_step"`
	PivotX       float32  `toml:"pivot_x"`
	PivotY       float32  `toml:"pivot_y"`
	StartX       float32  `toml:"start_x"`
	StartY       float32  `toml:"start_y"`
	LowerBound   float32  `toml:"lower_bound"`
	UpperBound   float32  `toml:"upper_bound"`
	MistakeBound float32  `toml:"mistake_bound"`
}

type HUDSettings struct {
	FailFlash Duration `toml:"fail_flash"`
}

type AudioSettings struct {
	Enabled     bool    `toml:"enabled"`
	MusicVolume float64 `toml:"music_volume"`
	SFXVolume   float64 `toml:"sfx_volume"`
}

type AssetSettings struct {
	Dir string `toml:"dir"`
}

// Settings is the full game configuration.
type Settings struct {
	Log    LogSettings    `toml:"log"`
	Window WindowSettings `toml:"window"`
	Render RenderSettings `toml:"render"`
	Scene  SceneSettings  `toml:"scene"`
	Game   GameSettings   `toml:"game"`
	Level  LevelSettings  `toml:"level"`
	HUD    HUDSettings    `toml:"hud"`
	Audio  AudioSettings  `toml:"audio"`
	Assets AssetSettings  `toml:"assets"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		Log: LogSettings{Level: "info"},
		Window: WindowSettings{
			Title:    "Flappy Fish",
			Width:    480,
			Height:   800,
			FPSLimit: 60,
		},
		Render: RenderSettings{
			BufferCapacity: 60000,
			SlowFrame:      D(16 * time.Millisecond),
		},
		Scene: SceneSettings{FrameDelay: D(150 * time.Millisecond)},
		Game: GameSettings{
			TransitionFloor: D(time.Second),
			MaxLives:        3,
		},
		Level: LevelSettings{
			Tick:         D(30 * time.Millisecond),
			IdleStep:     -1,
			DragStep:     0.7,
			PivotX:       -2,
			PivotY:       0,
			StartX:       -0.5,
			StartY:       0,
			LowerBound:   -0.9,
			UpperBound:   0.75,
			MistakeBound: -0.85,
		},
		HUD: HUDSettings{FailFlash: D(500 * time.Millisecond)},
		Audio: AudioSettings{
			Enabled:     true,
			MusicVolume: 0.3,
			SFXVolume:   0.6,
		},
		Assets: AssetSettings{Dir: "assets"},
	}
}

// Parse decodes TOML on top of the defaults, so a file only needs the keys it changes.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("could not parse settings: %w", err)
	}
	s.clamp()
	return s, nil
}

// Load reads settings from path. An empty path falls back to $FLAPPY_FISH_CONFIG,
// and a missing file yields the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("could not read settings file: %w", err)
	}
	return Parse(data)
}

// Encode renders settings back to TOML.
func Encode(s Settings) ([]byte, error) {
	return toml.Marshal(s)
}

func (s *Settings) clamp() {
	if s.Render.BufferCapacity < 8 {
		s.Render.BufferCapacity = 8
	}
	if s.Game.MaxLives < 1 {
		s.Game.MaxLives = 1
	}
	if s.Game.TransitionFloor.Duration < 0 {
		s.Game.TransitionFloor.Duration = 0
	}
	if s.Scene.FrameDelay.Duration <= 0 {
		s.Scene.FrameDelay.Duration = 150 * time.Millisecond
	}
	if s.Level.Tick.Duration <= 0 {
		s.Level.Tick.Duration = 30 * time.Millisecond
	}
	if s.Window.FPSLimit < 0 {
		s.Window.FPSLimit = 0
	}
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Get returns the process-wide settings.
func Get() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process-wide settings after clamping them to sane values.
func Set(s Settings) {
	s.clamp()
	mu.Lock()
	defer mu.Unlock()
	current = s
}

// GetFPSLimit returns the desktop frame cap.
func GetFPSLimit() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.Window.FPSLimit
}
