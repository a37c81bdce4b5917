// Package audio plays the game's sound cues.
package audio

import (
	"fmt"
	"sync"
)

// Cue identifies a sound effect or the ambient loop.
type Cue int

const (
	CueBackground Cue = iota
	CueBubbles
	CueClick
	CueMistake
	CueWin
)

var cueNames = [...]string{"background", "bubbles", "click", "mistake", "win"}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Player is what the screens and the host use to make noise. Implementations
// must be safe for concurrent use.
type Player interface {
	Play(c Cue)
	StartAmbient()
	StopAmbient()
	Close() error
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue)      {}
func (Nop) StartAmbient() {}
func (Nop) StopAmbient()  {}
func (Nop) Close() error  { return nil }

// Recorder remembers played cues. Used by tests.
type Recorder struct {
	mu      sync.Mutex
	cues    []Cue
	ambient bool
	closed  bool
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

func (r *Recorder) StartAmbient() {
	r.mu.Lock()
	r.ambient = true
	r.mu.Unlock()
}

func (r *Recorder) StopAmbient() {
	r.mu.Lock()
	r.ambient = false
	r.mu.Unlock()
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Cues returns a copy of everything played so far.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count reports how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func (r *Recorder) Ambient() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ambient
}
