// Package persist is the hand-off point for saving and publishing a
// project. No wire format is defined yet.
package persist

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/XS227/StreamerSite/internal/model"
)

// ErrNotImplemented is returned by Stub.
var ErrNotImplemented = errors.New("persistence not implemented")

// Snapshot is the editor state handed to the persistence collaborator.
type Snapshot struct {
	Project model.Project
	Page    *model.Page
	Mode    string
	Markup  string
}

// Persister saves and publishes projects.
type Persister interface {
	Save(ctx context.Context, snap Snapshot) error
	Publish(ctx context.Context, snap Snapshot) error
}

// Stub logs each hand-off and reports ErrNotImplemented.
type Stub struct {
	Log hclog.Logger
}

func (s Stub) Save(_ context.Context, snap Snapshot) error {
	s.logHandOff("save", snap)
	return ErrNotImplemented
}

func (s Stub) Publish(_ context.Context, snap Snapshot) error {
	s.logHandOff("publish", snap)
	return ErrNotImplemented
}

func (s Stub) logHandOff(op string, snap Snapshot) {
	if s.Log == nil {
		return
	}
	page := ""
	if snap.Page != nil {
		page = snap.Page.ID
	}
	s.Log.Info("persistence hand-off", "op", op, "project", snap.Project.Name, "page", page, "markup_bytes", len(snap.Markup))
}
