package persist

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/XS227/StreamerSite/internal/model"
)

func TestStub(t *testing.T) {
	var buf bytes.Buffer
	s := Stub{Log: hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Info})}

	snap := Snapshot{
		Project: model.Project{Name: "Streamer"},
		Page:    &model.Page{ID: "about"},
		Markup:  "<html></html>",
	}

	if err := s.Save(context.Background(), snap); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Save error = %v", err)
	}
	if err := s.Publish(context.Background(), snap); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Publish error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"op=save", "op=publish", "page=about", "markup_bytes=13"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestStubWithoutLogger(t *testing.T) {
	if err := (Stub{}).Save(context.Background(), Snapshot{}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Save error = %v", err)
	}
}
