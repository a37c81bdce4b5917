package input

import "fmt"

// Action is the phase of a single pointer gesture.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Pointer is a raw touch or mouse event in surface pixels, origin top left.
type Pointer struct {
	Action Action
	X, Y   float32
}

// Event is a pointer event mapped to normalized device coordinates.
type Event struct {
	Action Action
	X, Y   float32
}

// Surface is the drawable size in pixels.
type Surface struct {
	Width, Height int
}

func (s Surface) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// ToNDC maps a pixel position to [-1,1] with y pointing up.
func (s Surface) ToNDC(x, y float32) (float32, float32) {
	if !s.Valid() {
		return 0, 0
	}
	return x/float32(s.Width)*2 - 1, 1 - y/float32(s.Height)*2
}

// Translate converts a raw pointer into an NDC event.
func (s Surface) Translate(p Pointer) Event {
	x, y := s.ToNDC(p.X, p.Y)
	return Event{Action: p.Action, X: x, Y: y}
}

// Tracker follows a single pointer so hosts that only report positions and
// button edges (mice) produce the same Down/Move/Up stream as touch screens.
type Tracker struct {
	down bool
	x, y float32
}

// Press reports a button press at the last known position.
func (t *Tracker) Press() Pointer {
	t.down = true
	return Pointer{Action: ActionDown, X: t.x, Y: t.y}
}

// Release reports a button release. ok is false when no press was seen.
func (t *Tracker) Release() (p Pointer, ok bool) {
	if !t.down {
		return Pointer{}, false
	}
	t.down = false
	return Pointer{Action: ActionUp, X: t.x, Y: t.y}, true
}

// Moved records the cursor position and yields a Move only while pressed.
func (t *Tracker) Moved(x, y float32) (p Pointer, ok bool) {
	t.x, t.y = x, y
	if !t.down {
		return Pointer{}, false
	}
	return Pointer{Action: ActionMove, X: x, Y: y}, true
}

func (t *Tracker) Pressed() bool {
	return t.down
}
