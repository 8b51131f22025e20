// Package panel holds the inspection panel that mirrors the canvas
// document's markup for design-mode review.
package panel

import (
	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/mode"
)

// Tab names one panel of the inspection surface.
type Tab string

const (
	HTML          Tab = "html"
	CSS           Tab = "css"
	JS            Tab = "js"
	Presets       Tab = "presets"
	Plugins       Tab = "plugins"
	StylesManager Tab = "styles-manager"
)

// Tabs is the fixed set of inspection tabs.
var Tabs = []Tab{HTML, CSS, JS, Presets, Plugins, StylesManager}

// View is the inspection-panel boundary: per-tab text and visibility.
type View interface {
	SetContent(tab Tab, text string)
	SetVisible(tab Tab, visible bool)
}

// Panel is an in-memory View whose state is published to the host UI.
type Panel struct {
	content map[Tab]string
	visible map[Tab]bool
}

var _ View = (*Panel)(nil)

// New returns a panel with the html tab showing.
func New() *Panel {
	p := &Panel{
		content: make(map[Tab]string, len(Tabs)),
		visible: make(map[Tab]bool, len(Tabs)),
	}
	p.visible[HTML] = true
	return p
}

func (p *Panel) SetContent(tab Tab, text string)  { p.content[tab] = text }
func (p *Panel) SetVisible(tab Tab, visible bool) { p.visible[tab] = visible }
func (p *Panel) Content(tab Tab) string           { return p.content[tab] }
func (p *Panel) Visible(tab Tab) bool             { return p.visible[tab] }

// State is a copy of the panel for serialization.
type State struct {
	Active  Tab            `json:"active,omitempty"`
	Visible []Tab          `json:"visible"`
	Content map[Tab]string `json:"content"`
}

// Snapshot copies the panel state.
func (p *Panel) Snapshot() State {
	st := State{
		Visible: []Tab{},
		Content: make(map[Tab]string, len(p.content)),
	}
	for _, tab := range Tabs {
		if p.visible[tab] {
			st.Visible = append(st.Visible, tab)
			if st.Active == "" {
				st.Active = tab
			}
		}
	}
	for tab, text := range p.content {
		st.Content[tab] = text
	}
	return st
}

// RouteTab hides every tab, then shows the one named exactly name.
// Unknown names leave all tabs hidden and return false.
func RouteTab(v View, name string) (Tab, bool) {
	for _, tab := range Tabs {
		v.SetVisible(tab, false)
	}
	for _, tab := range Tabs {
		if string(tab) == name {
			v.SetVisible(tab, true)
			return tab, true
		}
	}
	return "", false
}

// Refresh replaces the html tab with the document's full markup. It only
// acts in a mode whose effect refreshes the panel, and never when the
// document is unavailable. It reports whether the panel was written.
func Refresh(v View, m mode.Mode, doc canvas.Document) bool {
	if !m.Effect().RefreshPanel || doc == nil {
		return false
	}
	markup, err := doc.Markup()
	if err != nil {
		return false
	}
	v.SetContent(HTML, markup)
	return true
}
