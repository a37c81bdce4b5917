package game

import (
	"errors"
	"fmt"
)

// State is the committed screen the game shows.
type State int

const (
	StateLoading State = iota
	StateMainMenu
	StateLevel
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMainMenu:
		return "main_menu"
	case StateLevel:
		return "level"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrIllegalTransition is returned for a target the current state cannot reach.
	ErrIllegalTransition = errors.New("game: illegal state transition")
	// ErrTransitionInFlight is returned while another transition is still building.
	ErrTransitionInFlight = errors.New("game: transition already in flight")
)

// legal lists the targets reachable from each committed state.
var legal = map[State][]State{
	StateLoading:  {StateMainMenu},
	StateMainMenu: {StateLevel},
	StateLevel:    {StateMainMenu},
}

func canTransition(from, to State) bool {
	for _, s := range legal[from] {
		if s == to {
			return true
		}
	}
	return false
}
