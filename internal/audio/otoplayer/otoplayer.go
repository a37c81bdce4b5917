// Package otoplayer plays synthesised cues through the system audio device.
package otoplayer

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"flappy-fish/internal/audio"
	"flappy-fish/internal/logging"
)

// Player implements audio.Player on an oto context.
type Player struct {
	ctx   *oto.Context
	ready chan struct{}

	musicVolume float64
	sfxVolume   float64

	mu      sync.Mutex
	ambient oto.Player

	bubbles atomic.Bool
	closed  atomic.Bool
}

var _ audio.Player = (*Player)(nil)

// New opens the audio device. Volumes are in [0,1].
func New(musicVolume, sfxVolume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, audio.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{
		ctx:         ctx,
		ready:       ready,
		musicVolume: clamp01(musicVolume),
		sfxVolume:   clamp01(sfxVolume),
	}, nil
}

func (p *Player) isReady() bool {
	if p.closed.Load() {
		return false
	}
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// Play starts c on its own player. A bubbles cue is dropped while the previous one still plays.
func (p *Player) Play(c audio.Cue) {
	if c == audio.CueBackground {
		p.StartAmbient()
		return
	}
	if !p.isReady() {
		return
	}
	if c == audio.CueBubbles && !p.bubbles.CompareAndSwap(false, true) {
		return
	}
	samples := audio.Generate(c)
	if len(samples) == 0 {
		if c == audio.CueBubbles {
			p.bubbles.Store(false)
		}
		return
	}
	go func() {
		if c == audio.CueBubbles {
			defer p.bubbles.Store(false)
		}
		player := p.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(p.sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			logging.Debug("audio: close %s player: %v", c, err)
		}
	}()
}

// StartAmbient starts or resumes the background loop.
func (p *Player) StartAmbient() {
	if !p.isReady() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ambient == nil {
		p.ambient = p.ctx.NewPlayer(audio.NewAmbient(0x5eed))
		p.ambient.SetVolume(p.musicVolume)
	}
	if !p.ambient.IsPlaying() {
		p.ambient.Play()
	}
}

// StopAmbient pauses the loop; StartAmbient continues where it left off.
func (p *Player) StopAmbient() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ambient != nil {
		p.ambient.Pause()
	}
}

func (p *Player) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ambient == nil {
		return nil
	}
	err := p.ambient.Close()
	p.ambient = nil
	return err
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
