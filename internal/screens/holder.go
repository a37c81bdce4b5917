package screens

import (
	"context"
	"fmt"
	"sync"

	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

// Holder owns an initialised handler and the lifetime of its simulation goroutine.
type Holder struct {
	handler Handler
	scene   *scene.Scene

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHolder initialises h against env.
func NewHolder(h Handler, env Env) (*Holder, error) {
	if err := h.Init(env); err != nil {
		return nil, fmt.Errorf("init %T: %w", h, err)
	}
	return &Holder{handler: h, scene: h.Scene()}, nil
}

func (h *Holder) Handler() Handler { return h.handler }

func (h *Holder) Scene() *scene.Scene { return h.scene }

// Templates are the uploads the screen still needs.
func (h *Holder) Templates() []scene.TextureTemplate {
	return h.handler.Textures()
}

func (h *Holder) Touch(ev input.Event) {
	h.handler.Touch(ev)
}

func (h *Holder) Pack(buf *scene.Buffers, offset int) (int, error) {
	return h.scene.Pack(buf, offset)
}

func (h *Holder) Draw(f scene.Frame) {
	h.handler.BeforeDraw(f.Now)
	h.scene.Draw(f)
	h.handler.AfterDraw(f.Now)
}

// Start runs the handler simulation on its own goroutine until Stop or ctx is done.
// Calling Start twice is a no-op.
func (h *Holder) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done != nil {
		return
	}
	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		h.handler.Simulate(ctx)
	}(h.done)
}

// Stop cancels the simulation and waits for it to return.
func (h *Holder) Stop() {
	h.mu.Lock()
	cancel, done := h.cancel, h.done
	h.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (h *Holder) TextureIDs() []uint32 {
	return h.scene.TextureIDs()
}
