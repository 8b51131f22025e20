package editor

import (
	"context"
	"slices"

	"github.com/XS227/StreamerSite/internal/config"
	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/model"
	"github.com/XS227/StreamerSite/internal/persist"
)

// State summarizes the session for the host UI.
type State struct {
	Project    string      `json:"project"`
	Mode       mode.Mode   `json:"mode"`
	Modes      []mode.Mode `json:"modes"`
	Page       *model.Page `json:"page,omitempty"`
	Session    string      `json:"session,omitempty"`
	Loaded     bool        `json:"loaded"`
	Accessible bool        `json:"accessible"`
	Selection  *Selection  `json:"selection,omitempty"`
}

// State returns the current session summary.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		Mode:  e.modes.Current(),
		Modes: slices.Clone(mode.All),
	}
	if e.project != nil {
		st.Project = e.project.Name
	}
	if e.session != nil {
		page := e.session.Page()
		st.Page = &page
		st.Session = e.session.ID()
		st.Loaded = e.session.Loaded()
		_, st.Accessible = e.session.Document()
	}
	if e.selection != nil {
		sel := *e.selection
		st.Selection = &sel
	}
	return st
}

// Project returns a copy of the active project.
func (e *Editor) Project() (model.Project, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.project == nil {
		return model.Project{}, false
	}
	p := *e.project
	p.Pages = slices.Clone(e.project.Pages)
	return p, true
}

// Config returns the editor config document, nil before LoadConfig.
func (e *Editor) Config() *config.Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Layers returns the layers document, nil before LoadConfig.
func (e *Editor) Layers() *config.Layers {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layers
}

// Markup serializes the loaded document as it currently stands.
func (e *Editor) Markup() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.document()
	if !ok {
		return "", false
	}
	markup, err := doc.Markup()
	if err != nil {
		return "", false
	}
	return markup, true
}

// Save hands the current project and page to the persistence collaborator.
func (e *Editor) Save(ctx context.Context) error {
	return e.persister.Save(ctx, e.snapshot())
}

// Publish hands the current project and page to the persistence
// collaborator for publishing.
func (e *Editor) Publish(ctx context.Context) error {
	return e.persister.Publish(ctx, e.snapshot())
}

func (e *Editor) snapshot() persist.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := persist.Snapshot{Mode: string(e.modes.Current())}
	if e.project != nil {
		snap.Project = *e.project
		snap.Project.Pages = slices.Clone(e.project.Pages)
	}
	if e.session != nil {
		page := e.session.Page()
		snap.Page = &page
	}
	if doc, ok := e.document(); ok {
		snap.Markup, _ = doc.Markup()
	}
	return snap
}
