package panel

import (
	"errors"
	"testing"

	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/mode"
)

type markupDoc struct {
	markup string
	err    error
}

func (d markupDoc) EditableElements() []canvas.Element       { return nil }
func (d markupDoc) Markup() (string, error)                  { return d.markup, d.err }
func (d markupDoc) AddClickListener(canvas.ClickListener)    {}
func (d markupDoc) Click(string) (*canvas.ClickEvent, error) { return nil, canvas.ErrNoTarget }

func TestRouteTab(t *testing.T) {
	p := New()

	tab, ok := RouteTab(p, "css")
	if !ok || tab != CSS {
		t.Fatalf("RouteTab(css) = %q, %v", tab, ok)
	}
	for _, other := range Tabs {
		if got := p.Visible(other); got != (other == CSS) {
			t.Errorf("tab %s visible = %v", other, got)
		}
	}

	if _, ok := RouteTab(p, "unknown"); ok {
		t.Error("unknown tab should not be recognized")
	}
	for _, other := range Tabs {
		if p.Visible(other) {
			t.Errorf("tab %s visible after unknown route", other)
		}
	}
}

func TestRouteTabExactMatch(t *testing.T) {
	p := New()
	for _, name := range []string{"CSS", " css", "styles"} {
		if _, ok := RouteTab(p, name); ok {
			t.Errorf("RouteTab(%q) matched", name)
		}
	}
	if tab, ok := RouteTab(p, "styles-manager"); !ok || tab != StylesManager {
		t.Errorf("RouteTab(styles-manager) = %q, %v", tab, ok)
	}
}

func TestRefresh(t *testing.T) {
	doc := markupDoc{markup: "<html><body>hi</body></html>"}

	tests := []struct {
		mode  mode.Mode
		doc   canvas.Document
		wrote bool
	}{
		{mode.Design, doc, true},
		{mode.Edit, doc, false},
		{mode.Preview, doc, false},
		{mode.Design, nil, false},
		{mode.Design, markupDoc{err: errors.New("boom")}, false},
	}
	for _, tt := range tests {
		p := New()
		if got := Refresh(p, tt.mode, tt.doc); got != tt.wrote {
			t.Errorf("Refresh(%s) = %v, want %v", tt.mode, got, tt.wrote)
		}
		want := ""
		if tt.wrote {
			want = doc.markup
		}
		if p.Content(HTML) != want {
			t.Errorf("Refresh(%s) content = %q, want %q", tt.mode, p.Content(HTML), want)
		}
	}
}

func TestRefreshReplacesContent(t *testing.T) {
	p := New()
	p.SetContent(HTML, "stale")
	Refresh(p, mode.Design, markupDoc{markup: "<html></html>"})
	if p.Content(HTML) != "<html></html>" {
		t.Errorf("content = %q, want full replace", p.Content(HTML))
	}
}

func TestSnapshot(t *testing.T) {
	p := New()
	st := p.Snapshot()
	if st.Active != HTML || len(st.Visible) != 1 {
		t.Errorf("initial snapshot = %+v", st)
	}

	RouteTab(p, "js")
	p.SetContent(JS, "console.log(1)")
	st = p.Snapshot()
	if st.Active != JS {
		t.Errorf("active = %q, want js", st.Active)
	}
	if st.Content[JS] != "console.log(1)" {
		t.Errorf("content = %v", st.Content)
	}

	RouteTab(p, "nope")
	if st := p.Snapshot(); st.Active != "" || len(st.Visible) != 0 {
		t.Errorf("hidden snapshot = %+v", st)
	}
}
