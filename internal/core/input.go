package core

import "strings"

// Action is a logical input the simulation reacts to. Platforms map keys to
// actions; games never see raw keys.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // accelerate left while held
	ActionRight          // accelerate right while held
	ActionJump           // jump; released by the game once used
	ActionPause          // toggle pause
	ActionBack           // leave the run for the menu
	ActionRestart        // new run after game over
	ActionQuit           // exit the program or session
	actionCount
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionPause:   "Pause",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

func (a Action) bit() uint32 {
	if a == ActionNone || a >= actionCount {
		return 0
	}
	return 1 << a
}

// InputFrame is the set of actions held during one simulation tick.
// The simulation may Release an action to consume it; the platform
// decides when it is asserted again. The zero value holds nothing.
type InputFrame struct {
	held uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held.
func (f *InputFrame) Set(a Action) {
	f.held |= a.bit()
}

// Release clears a single held action.
func (f *InputFrame) Release(a Action) {
	f.held &^= a.bit()
}

// Has returns true if the given action is held.
func (f InputFrame) Has(a Action) bool {
	b := a.bit()
	return b != 0 && f.held&b != 0
}

// Clear resets all actions.
func (f *InputFrame) Clear() {
	f.held = 0
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the held actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionLeft; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String renders the held actions, e.g. "Left+Jump".
func (f InputFrame) String() string {
	acts := f.Actions()
	if len(acts) == 0 {
		return "-"
	}
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = a.String()
	}
	return strings.Join(names, "+")
}
