// Package mode defines the editor's interaction modes and what switching
// into each one does.
package mode

import (
	"errors"
	"fmt"
)

// Mode is one of Edit, Design or Preview.
type Mode string

const (
	Edit    Mode = "edit"
	Design  Mode = "design"
	Preview Mode = "preview"
)

// Initial is the mode of a new session.
const Initial = Edit

// ErrUnknown is returned by Parse for names outside the closed set.
var ErrUnknown = errors.New("unknown mode")

// All lists the modes in switcher order.
var All = []Mode{Edit, Design, Preview}

// Effect is the side effect of entering a mode.
type Effect struct {
	Editable        bool // marked elements accept direct editing
	RefreshPanel    bool // push the document markup into the inspection panel
	InterceptClicks bool // canvas clicks are captured for selection
}

var effects = map[Mode]Effect{
	Edit:    {Editable: true, InterceptClicks: true},
	Design:  {RefreshPanel: true, InterceptClicks: true},
	Preview: {},
}

// Parse validates a mode name.
func Parse(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := effects[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := effects[m]
	return ok
}

// Effect returns the transition effect for entering m.
func (m Mode) Effect() Effect {
	e, ok := effects[m]
	if !ok {
		panic(fmt.Sprintf("mode: no effect for %q", string(m)))
	}
	return e
}

func (m Mode) String() string { return string(m) }

// Machine records the current mode. It has no terminal state.
type Machine struct {
	current Mode
}

// NewMachine starts in Initial.
func NewMachine() *Machine {
	return &Machine{current: Initial}
}

// Current returns the active mode.
func (m *Machine) Current() Mode { return m.current }

// Set records next as the active mode and returns its effect. changed is
// false when next was already active.
func (m *Machine) Set(next Mode) (effect Effect, changed bool) {
	effect = next.Effect()
	changed = m.current != next
	m.current = next
	return effect, changed
}
