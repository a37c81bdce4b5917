package scene

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SpriteKind selects whether a sprite is corrected for the screen aspect ratio.
type SpriteKind int

const (
	// SpriteSquare sprites stay square on screen: their size is scaled by the Aspect.
	SpriteSquare SpriteKind = iota
	// SpriteNormal sprites are sized in raw normalized device units.
	SpriteNormal
)

// Aspect holds the per-axis factors applied to square sprites.
type Aspect struct {
	X, Y float32
}

// UnitAspect leaves sizes untouched.
var UnitAspect = Aspect{X: 1, Y: 1}

// AspectFor computes the factors for a surface so that square sprites stay square.
func AspectFor(width, height int) Aspect {
	if width <= 0 || height <= 0 {
		return UnitAspect
	}
	if width > height {
		return Aspect{X: 1, Y: float32(width) / float32(height)}
	}
	return Aspect{X: float32(height) / float32(width), Y: 1}
}

// DefaultFrameDelay is the time each animation frame stays on screen.
const DefaultFrameDelay = 150 * time.Millisecond

// Painter issues the GPU draw for one textured quad.
type Painter interface {
	DrawQuad(texture uint32, model mgl32.Mat4, first int)
}

// Frame carries per-frame draw parameters down the scene graph.
type Frame struct {
	Painter    Painter
	Now        time.Time
	FrameDelay time.Duration
}

func (f Frame) delay() time.Duration {
	if f.FrameDelay > 0 {
		return f.FrameDelay
	}
	return DefaultFrameDelay
}

var lastID atomic.Uint64

// Object is a positioned, textured quad with a named-state texture table and
// optional frame animations. All fields are guarded by mu so the simulation
// goroutine can move an object while the render thread draws it.
type Object struct {
	id uint64

	mu     sync.Mutex
	x, y   float32
	width  float32
	height float32
	quad   [VerticesPerQuad * FloatsPerVertex]float32
	offset int

	visible bool

	state      string
	animation  string
	frame      int
	lastFrame  time.Time
	looped     bool
	textures   map[string]uint32
	animations map[string][]uint32
}

// NewObject creates a quad centered at the origin.
func NewObject(width, height float32, kind SpriteKind, aspect Aspect) *Object {
	if kind == SpriteSquare {
		width *= aspect.X
		height *= aspect.Y
	}
	return &Object{
		id:         lastID.Add(1),
		width:      width,
		height:     height,
		quad:       [8]float32{-width / 2, -height / 2, -width / 2, height / 2, width / 2, height / 2, width / 2, -height / 2},
		visible:    true,
		textures:   make(map[string]uint32),
		animations: make(map[string][]uint32),
	}
}

func (o *Object) ID() uint64 { return o.id }

// Equal reports whether both values refer to the same object identity.
func (o *Object) Equal(other *Object) bool {
	return other != nil && o.id == other.id
}

// Size returns the (aspect corrected) width and height.
func (o *Object) Size() (float32, float32) {
	return o.width, o.height
}

// Pack writes the quad at offset and remembers where it lives for Draw.
func (o *Object) Pack(buf *Buffers, offset int) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	next, err := buf.WriteQuad(offset, o.quad)
	if err != nil {
		return offset, err
	}
	o.offset = offset
	return next, nil
}

// Draw resolves the current texture and paints the quad translated to the object position.
func (o *Object) Draw(f Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.visible {
		return
	}
	texture, ok := o.textures[o.state]
	if o.animation != "" {
		frames := o.animations[o.animation]
		if o.frame >= 0 && o.frame < len(frames) {
			texture, ok = frames[o.frame], true
			o.advanceLocked(f.Now, len(frames), f.delay())
		}
	}
	if !ok {
		return
	}
	f.Painter.DrawQuad(texture, mgl32.Translate3D(o.x, o.y, 0), o.offset)
}

// advanceLocked steps at most one frame per call. The first call for a fresh
// animation only starts the clock.
func (o *Object) advanceLocked(now time.Time, count int, delay time.Duration) {
	if o.lastFrame.IsZero() {
		o.lastFrame = now
		return
	}
	if now.Sub(o.lastFrame) < delay {
		return
	}
	o.frame++
	o.lastFrame = now
	if o.frame >= count {
		o.frame = 0
		if !o.looped {
			o.stopLocked()
		}
	}
}

func (o *Object) SetPosition(x, y float32) {
	o.mu.Lock()
	o.x, o.y = x, y
	o.mu.Unlock()
}

func (o *Object) Position() (float32, float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.x, o.y
}

func (o *Object) SetVisible(visible bool) {
	o.mu.Lock()
	o.visible = visible
	o.mu.Unlock()
}

func (o *Object) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// AddTexture registers a static texture. The first texture becomes the current state.
func (o *Object) AddTexture(name string, id uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.textures) == 0 {
		o.state = name
	}
	o.textures[name] = id
}

// AddAnimation registers the ordered frame textures of a strip.
func (o *Object) AddAnimation(name string, ids []uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.animations[name] = append([]uint32(nil), ids...)
}

// SetState switches the static texture.
func (o *Object) SetState(name string) {
	o.mu.Lock()
	o.state = name
	o.mu.Unlock()
}

// Animate selects the static texture registered under name and clears looping.
// It does not start strip playback; use AnimateLoop or PlayOnce for that.
func (o *Object) Animate(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = name
	o.looped = false
	o.frame = 0
}

// AnimateLoop plays the named strip forever. Re-selecting the running strip keeps its frame.
func (o *Object) AnimateLoop(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if name != o.animation {
		o.frame = 0
		o.lastFrame = time.Time{}
	}
	o.animation = name
	o.looped = true
}

// PlayOnce plays the named strip from its first frame and stops after the last one.
func (o *Object) PlayOnce(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.animation = name
	o.looped = false
	o.frame = 0
	o.lastFrame = time.Time{}
}

func (o *Object) StopAnimation() {
	o.mu.Lock()
	o.stopLocked()
	o.mu.Unlock()
}

func (o *Object) stopLocked() {
	o.animation = ""
	o.looped = false
	o.frame = 0
	o.lastFrame = time.Time{}
}

// AnimationState reports the running strip, its frame index and loop flag.
func (o *Object) AnimationState() (name string, frame int, looped bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.animation, o.frame, o.looped
}

func (o *Object) State() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsInside is an axis aligned hit test against the current position.
func (o *Object) IsInside(x, y float32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.x-o.width/2 <= x && x <= o.x+o.width/2 &&
		o.y-o.height/2 <= y && y <= o.y+o.height/2
}

// TextureIDs lists every texture bound to the object, static ones first.
func (o *Object) TextureIDs() []uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]uint32, 0, len(o.textures))
	for _, name := range sortedKeys(o.textures) {
		ids = append(ids, o.textures[name])
	}
	for _, name := range sortedKeys(o.animations) {
		ids = append(ids, o.animations[name]...)
	}
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
