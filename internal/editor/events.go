package editor

import (
	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/model"
	"github.com/XS227/StreamerSite/internal/panel"
)

// EventType names a session state change pushed to subscribers.
type EventType string

const (
	EventProjectLoaded    EventType = "project.loaded"
	EventPageActivated    EventType = "page.activated"
	EventPageLoaded       EventType = "page.loaded"
	EventModeChanged      EventType = "mode.changed"
	EventPanelUpdated     EventType = "panel.updated"
	EventSelectionChanged EventType = "selection.changed"
)

// Event is one session state change.
type Event struct {
	Type      EventType   `json:"type"`
	Project   string      `json:"project,omitempty"`
	Session   string      `json:"session,omitempty"`
	Page      *model.Page `json:"page,omitempty"`
	Mode      mode.Mode   `json:"mode,omitempty"`
	Tab       panel.Tab   `json:"tab,omitempty"`
	Selection *Selection  `json:"selection,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Subscribe registers fn for every event until the returned func is called.
// fn runs with the editor lock held and must not call back into the Editor.
func (e *Editor) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

func (e *Editor) emit(ev Event) {
	for _, fn := range e.subs {
		fn(ev)
	}
}
