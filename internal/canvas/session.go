package canvas

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/XS227/StreamerSite/internal/model"
)

// LoadResult is the single completion notification of a Surface load.
// Document is nil when the loaded page cannot be accessed.
type LoadResult struct {
	Document Document
	Err      error
}

// Surface is the rendering surface. Load points it at src and delivers
// exactly one LoadResult on the returned channel, whenever the load ends.
type Surface interface {
	Load(ctx context.Context, src string) <-chan LoadResult
}

// Session ties one page to one load of the rendering surface.
type Session struct {
	id   uuid.UUID
	page model.Page
	done chan struct{}

	mu     sync.Mutex
	doc    Document
	err    error
	loaded bool
}

// Activate points surface at page and returns the new session at once.
// When the load completes, onLoad runs on its own goroutine with the
// session it belongs to; Done closes after onLoad returns. A load that
// never completes leaves the session unloaded.
func Activate(ctx context.Context, surface Surface, page model.Page, onLoad func(*Session)) *Session {
	s := &Session{
		id:   uuid.New(),
		page: page,
		done: make(chan struct{}),
	}
	results := surface.Load(ctx, page.File)

	go func() {
		defer close(s.done)

		var res LoadResult
		select {
		case res = <-results:
		case <-ctx.Done():
			res = LoadResult{Err: ctx.Err()}
		}

		s.mu.Lock()
		s.doc = res.Document
		s.err = res.Err
		s.loaded = true
		s.mu.Unlock()

		if onLoad != nil {
			onLoad(s)
		}
	}()
	return s
}

func (s *Session) ID() string       { return s.id.String() }
func (s *Session) Page() model.Page { return s.page }

// Done is closed once the load completion has been handled.
func (s *Session) Done() <-chan struct{} { return s.done }

// Loaded reports whether the load completed, successfully or not.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Err is the load error, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Document returns the loaded document. ok is false before completion and
// whenever the document is inaccessible.
func (s *Session) Document() (doc Document, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, false
	}
	return s.doc, true
}
