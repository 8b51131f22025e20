// Package editor is the editor session engine. It owns the session state
// (config, project, mode, canvas session, inspection panel) and sequences
// page loads against mode changes.
//
// Every exported method holds the editor lock for its whole duration, so
// no caller ever observes a partially applied transition. Load
// completions run on their own goroutine and take the same lock; a
// completion for a superseded canvas session is discarded.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/config"
	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/model"
	"github.com/XS227/StreamerSite/internal/panel"
	"github.com/XS227/StreamerSite/internal/persist"
	"github.com/XS227/StreamerSite/internal/project"
	"github.com/XS227/StreamerSite/internal/resolver"
)

var (
	ErrNoConfig = errors.New("editor config not loaded")
	ErrNoPage   = errors.New("no page to activate")
)

// Options wires an Editor to its collaborators.
type Options struct {
	Fetcher   project.Fetcher
	Surface   canvas.Surface
	Persister persist.Persister
	Paths     project.Paths
	Logger    hclog.Logger
}

// Editor is one editing session.
type Editor struct {
	log       hclog.Logger
	fetcher   project.Fetcher
	surface   canvas.Surface
	persister persist.Persister
	paths     project.Paths

	base   context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	cfg       *config.Editor
	layers    *config.Layers
	project   *model.Project
	modes     *mode.Machine
	session   *canvas.Session
	panel     *panel.Panel
	selection *Selection
	subs      map[int]func(Event)
	nextSub   int
}

// Selection is the last element picked on the canvas.
type Selection struct {
	Tag  string `json:"tag"`
	Path string `json:"path"`
}

// New creates an editor in edit mode with nothing loaded.
func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	persister := opts.Persister
	if persister == nil {
		persister = persist.Stub{Log: log.Named("persist")}
	}
	base, cancel := context.WithCancel(context.Background())

	return &Editor{
		log:       log,
		fetcher:   opts.Fetcher,
		surface:   opts.Surface,
		persister: persister,
		paths:     opts.Paths,
		base:      base,
		cancel:    cancel,
		modes:     mode.NewMachine(),
		panel:     panel.New(),
		subs:      make(map[int]func(Event)),
	}
}

// Close abandons any load still in flight.
func (e *Editor) Close() {
	e.cancel()
}

// Init loads config and project, then activates the requested page (or the
// first page). A config failure is returned; nothing else is fatal.
func (e *Editor) Init(ctx context.Context, requested string) (*canvas.Session, error) {
	if err := e.LoadConfig(ctx); err != nil {
		return nil, err
	}
	if err := e.LoadProject(ctx); err != nil {
		return nil, err
	}
	return e.Navigate(requested)
}

// LoadConfig fetches the editor config and layers documents.
func (e *Editor) LoadConfig(ctx context.Context) error {
	cfg, layers, err := project.LoadConfig(ctx, e.fetcher, e.paths)
	if err != nil {
		e.log.Error("editor config unavailable", "error", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	e.layers = layers
	e.log.Debug("editor config loaded", "project", cfg.ProjectName, "fonts", len(cfg.GoogleFonts))
	return nil
}

// LoadProject (re)reads the project metadata. It replaces the page list
// wholesale; the current canvas session is left alone. The caller's
// cancellation does not reach the fetch: an abandoned request must not
// turn a healthy project into the fallback page.
func (e *Editor) LoadProject(ctx context.Context) error {
	e.mu.Lock()
	cfg := e.cfg
	e.mu.Unlock()
	if cfg == nil {
		return ErrNoConfig
	}

	p := project.Load(context.WithoutCancel(ctx), e.fetcher, cfg, e.log.Named("project"))

	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = p
	e.emit(Event{Type: EventProjectLoaded, Project: p.Name})
	return nil
}

// Navigate resolves requested against the page list and activates it.
func (e *Editor) Navigate(requested string) (*canvas.Session, error) {
	e.mu.Lock()
	var pages []model.Page
	if e.project != nil {
		pages = e.project.Pages
	}
	page, ok := resolver.ResolveInitialPage(pages, requested)
	e.mu.Unlock()

	if !ok {
		return nil, ErrNoPage
	}
	return e.Activate(page), nil
}

// ActivateID activates the page with the given id.
func (e *Editor) ActivateID(id string) (*canvas.Session, error) {
	e.mu.Lock()
	if e.project == nil {
		e.mu.Unlock()
		return nil, ErrNoPage
	}
	page, ok := e.project.Page(id)
	e.mu.Unlock()

	if !ok {
		return nil, ErrNoPage
	}
	return e.Activate(page), nil
}

// Activate points the canvas at page. The previous canvas session is
// superseded at once; its completion, if it still arrives, is ignored.
func (e *Editor) Activate(page model.Page) *canvas.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	// The completion goroutine blocks on e.mu until e.session is set below.
	sess := canvas.Activate(e.base, e.surface, page, e.complete)
	e.session = sess
	e.selection = nil

	e.log.Debug("page activated", "page", page.ID, "file", page.File, "session", sess.ID())
	e.emit(Event{Type: EventPageActivated, Session: sess.ID(), Page: &page})
	return sess
}

// Reload re-reads the project and re-activates the current page if it is
// still listed, otherwise the first page.
func (e *Editor) Reload(ctx context.Context) (*canvas.Session, error) {
	e.mu.Lock()
	current := ""
	if e.session != nil {
		current = e.session.Page().File
	}
	e.mu.Unlock()

	if err := e.LoadProject(ctx); err != nil {
		return nil, err
	}
	return e.Navigate(current)
}

// complete applies a finished load. It runs on the session's completion
// goroutine.
func (e *Editor) complete(sess *canvas.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()

	page := sess.Page()
	if sess != e.session {
		e.log.Debug("discarding stale load", "page", page.ID, "session", sess.ID())
		return
	}

	doc, ok := sess.Document()
	if !ok {
		e.log.Warn("canvas document not accessible", "page", page.ID, "error", sess.Err())
		ev := Event{Type: EventPageLoaded, Session: sess.ID(), Page: &page}
		if err := sess.Err(); err != nil {
			ev.Error = err.Error()
		}
		e.emit(ev)
		return
	}

	current := e.modes.Current()
	canvas.SetEditable(doc, current.Effect().Editable)
	doc.AddClickListener(e.interceptor(sess))
	if panel.Refresh(e.panel, current, doc) {
		e.emit(Event{Type: EventPanelUpdated, Tab: panel.HTML})
	}

	e.log.Debug("page loaded", "page", page.ID, "mode", current, "session", sess.ID())
	e.emit(Event{Type: EventPageLoaded, Session: sess.ID(), Page: &page, Mode: current})
}

// document returns the current canvas document, if it can be touched.
func (e *Editor) document() (canvas.Document, bool) {
	if e.session == nil {
		return nil, false
	}
	return e.session.Document()
}
