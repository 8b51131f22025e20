package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/dom"
	"github.com/XS227/StreamerSite/internal/editor"
	"github.com/XS227/StreamerSite/internal/panel"
	"github.com/XS227/StreamerSite/internal/project"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"config/config.json": {Data: []byte(`{"projectName": "Streamer"}`)},
		"config/layers.json": {Data: []byte(`{}`)},
		"projects/default/project.json": {Data: []byte(`{
			"name": "Fjolsenbanden",
			"templatePath": "projects/default/template",
			"pages": [
				{"id": "index", "title": "Home", "file": "index.html", "isHome": true},
				{"id": "about", "title": "About", "file": "about.html"}
			]
		}`)},
		"projects/default/template/index.html": {Data: []byte(`<html><body><h1 data-ssb-editable>Welcome</h1><a href="/x">x</a></body></html>`)},
		"projects/default/template/about.html": {Data: []byte(`<html><body><h2 data-ssb-editable>About</h2></body></html>`)},
	}
}

func newTestServer(t *testing.T, cfg Config) (*Server, *editor.Editor) {
	t.Helper()
	fsys := testFS()
	ed := editor.New(editor.Options{
		Fetcher: project.FSFetcher{FS: fsys},
		Surface: dom.NewFileSurface(fsys),
		Paths:   project.Paths{Config: "config/config.json", Layers: "config/layers.json"},
	})
	t.Cleanup(ed.Close)

	sess, err := ed.Init(context.Background(), "")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	waitSession(t, sess)

	srv := New(cfg, ed, nil)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, ed
}

func waitSession(t *testing.T, sess *canvas.Session) {
	t.Helper()
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load never completed")
	}
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/api/session", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestProjectEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/api/project", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Name  string `json:"name"`
		Pages []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Name != "Fjolsenbanden" || len(body.Pages) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Pages[0].Label != "Home (home)" {
		t.Errorf("home label = %q", body.Pages[0].Label)
	}
}

func TestModeEndpoint(t *testing.T) {
	srv, ed := newTestServer(t, Config{})

	w := do(t, srv, "POST", "/api/mode", `{"mode":"design"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var st editor.State
	json.Unmarshal(w.Body.Bytes(), &st)
	if st.Mode != "design" {
		t.Errorf("mode = %q", st.Mode)
	}

	markup, _ := ed.Markup()
	if ed.Panel().Content[panel.HTML] != markup {
		t.Error("design mode did not fill the html panel")
	}

	if w := do(t, srv, "POST", "/api/mode", `{"mode":"wysiwyg"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown mode: expected 400, got %d", w.Code)
	}
	if w := do(t, srv, "POST", "/api/mode", `nope`); w.Code != http.StatusBadRequest {
		t.Errorf("bad body: expected 400, got %d", w.Code)
	}
}

func TestTabEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := do(t, srv, "POST", "/api/panel/tab", `{"tab":"css"}`)
	var st panel.State
	json.Unmarshal(w.Body.Bytes(), &st)
	if st.Active != panel.CSS || len(st.Visible) != 1 {
		t.Errorf("panel = %+v", st)
	}

	w = do(t, srv, "POST", "/api/panel/tab", `{"tab":"unknown"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown tab: expected 200, got %d", w.Code)
	}
	st = panel.State{}
	json.Unmarshal(w.Body.Bytes(), &st)
	if len(st.Visible) != 0 {
		t.Errorf("visible = %v, want none", st.Visible)
	}
}

func TestActivateAndClick(t *testing.T) {
	srv, ed := newTestServer(t, Config{})

	w := do(t, srv, "POST", "/api/pages/about/activate", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	var resp sessionResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.PageID != "about" || resp.Session == "" {
		t.Fatalf("response = %+v", resp)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !ed.State().Accessible || ed.State().Session != resp.Session {
		if time.Now().After(deadline) {
			t.Fatal("about page never loaded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w = do(t, srv, "POST", "/api/canvas/click", `{"selector":"h2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("click: expected 200, got %d: %s", w.Code, w.Body)
	}
	var res editor.ClickResult
	json.Unmarshal(w.Body.Bytes(), &res)
	if !res.DefaultPrevented || res.Selection == nil || res.Selection.Tag != "h2" {
		t.Errorf("click result = %+v", res)
	}

	if w := do(t, srv, "POST", "/api/canvas/click", `{"selector":"table"}`); w.Code != http.StatusNotFound {
		t.Errorf("missing target: expected 404, got %d", w.Code)
	}
	if w := do(t, srv, "POST", "/api/pages/missing/activate", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing page: expected 404, got %d", w.Code)
	}
}

func TestCanvasEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/canvas", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `contenteditable="true"`) {
		t.Errorf("canvas markup missing edit state: %s", w.Body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestSaveAndPublishStubbed(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	for _, target := range []string{"/api/save", "/api/publish"} {
		if w := do(t, srv, "POST", target, ""); w.Code != http.StatusNotImplemented {
			t.Errorf("%s: expected 501, got %d", target, w.Code)
		}
	}
}

func TestAssetsNoCache(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	srv, _ := newTestServer(t, Config{Root: root})

	w := do(t, srv, "GET", "/style.css", "")
	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Fatalf("asset: %d %q", w.Code, w.Body)
	}
	if w.Header().Get("Cache-Control") != "no-cache, no-store, must-revalidate" {
		t.Errorf("cache-control = %q", w.Header().Get("Cache-Control"))
	}

	if w := do(t, srv, "GET", "/empty/", ""); w.Code != http.StatusNotFound {
		t.Errorf("directory listing: expected 404, got %d", w.Code)
	}
}

func TestHostPageDeepLink(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	srv, ed := newTestServer(t, Config{Root: root})

	if w := do(t, srv, "GET", "/?page=about.html", ""); w.Code != http.StatusOK {
		t.Fatalf("host page: %d", w.Code)
	}
	st := ed.State()
	if st.Page == nil || st.Page.ID != "about" {
		t.Errorf("page = %+v, want about", st.Page)
	}

	do(t, srv, "GET", "/", "")
	if st := ed.State(); st.Page.ID != "about" {
		t.Errorf("plain host load navigated to %q", st.Page.ID)
	}
}

func TestWebSocketEventsAndCommands(t *testing.T) {
	srv, _ := newTestServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsRequest{Type: "mode", Mode: "preview"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var sawEvent, sawOK bool
	for !(sawEvent && sawOK) {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		switch msg.Type {
		case "event":
			if msg.Event != nil && msg.Event.Type == editor.EventModeChanged && msg.Event.Mode == "preview" {
				sawEvent = true
			}
		case "ok":
			sawOK = true
		case "error":
			t.Fatalf("unexpected error: %s", msg.Error)
		}
	}

	if err := conn.WriteJSON(wsRequest{Type: "teleport"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "error" {
			if !strings.Contains(msg.Error, "unknown message type") {
				t.Errorf("error = %q", msg.Error)
			}
			break
		}
	}
}
