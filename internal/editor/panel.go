package editor

import (
	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/panel"
)

// RefreshPanel mirrors the loaded document into the html tab. Outside
// design mode, or without an accessible document, it does nothing.
func (e *Editor) RefreshPanel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshPanel()
}

func (e *Editor) refreshPanel() bool {
	doc, _ := e.document()
	if !panel.Refresh(e.panel, e.modes.Current(), doc) {
		return false
	}
	e.emit(Event{Type: EventPanelUpdated, Tab: panel.HTML})
	return true
}

// RouteTab shows the named inspection tab and hides the rest.
func (e *Editor) RouteTab(name string) (panel.Tab, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tab, ok := panel.RouteTab(e.panel, name)
	e.emit(Event{Type: EventPanelUpdated, Tab: tab})
	return tab, ok
}

// Panel returns a copy of the inspection panel.
func (e *Editor) Panel() panel.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.panel.Snapshot()
}

// ClickResult reports what an intercepted canvas click did.
type ClickResult struct {
	Dispatched         bool       `json:"dispatched"`
	DefaultPrevented   bool       `json:"defaultPrevented"`
	PropagationStopped bool       `json:"propagationStopped"`
	Selection          *Selection `json:"selection,omitempty"`
}

// Click dispatches a click on the first element matching selector in the
// loaded document. Without an accessible document nothing is dispatched.
func (e *Editor) Click(selector string) (ClickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ClickResult{}, ErrNoPage
	}
	doc, ok := e.session.Document()
	if !ok {
		return ClickResult{}, nil
	}

	before := e.selection
	ev, err := doc.Click(selector)
	if err != nil {
		return ClickResult{}, err
	}

	res := ClickResult{
		Dispatched:         true,
		DefaultPrevented:   ev.DefaultPrevented(),
		PropagationStopped: ev.PropagationStopped(),
	}
	if e.selection != nil && e.selection != before {
		sel := *e.selection
		res.Selection = &sel
	}
	return res, nil
}

// interceptor captures clicks on sess's document while the mode allows it.
// It is dispatched from Click, with e.mu held.
func (e *Editor) interceptor(sess *canvas.Session) canvas.ClickListener {
	return func(ev *canvas.ClickEvent) {
		if sess != e.session || !e.modes.Current().Effect().InterceptClicks {
			return
		}
		ev.PreventDefault()
		ev.StopPropagation()
		e.selectElement(ev.Target)
	}
}

func (e *Editor) selectElement(el canvas.Element) {
	e.selection = &Selection{Tag: el.Tag(), Path: el.Path()}
	e.log.Debug("selected element", "tag", e.selection.Tag, "path", e.selection.Path)
	e.emit(Event{Type: EventSelectionChanged, Selection: e.selection})

	e.refreshPanel()
}

// Selection returns the last selected element, if any.
func (e *Editor) Selection() *Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selection == nil {
		return nil
	}
	sel := *e.selection
	return &sel
}
