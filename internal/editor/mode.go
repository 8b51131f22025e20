package editor

import (
	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/panel"
)

// SetMode switches the interaction mode and applies its effect to the
// loaded document. With nothing loaded the mode is only recorded; the next
// completed load applies it.
func (e *Editor) SetMode(m mode.Mode) error {
	if !m.Valid() {
		_, err := mode.Parse(string(m))
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	effect, changed := e.modes.Set(m)
	if doc, ok := e.document(); ok {
		canvas.SetEditable(doc, effect.Editable)
		if panel.Refresh(e.panel, m, doc) {
			e.emit(Event{Type: EventPanelUpdated, Tab: panel.HTML})
		}
	}

	if changed {
		e.log.Debug("mode changed", "mode", m)
		e.emit(Event{Type: EventModeChanged, Mode: m})
	}
	return nil
}

// Mode returns the active mode.
func (e *Editor) Mode() mode.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modes.Current()
}
