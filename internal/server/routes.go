package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/editor"
	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/persist"
)

func (s *Server) registerAPI(r chi.Router) {
	r.Get("/project", s.handleProject)
	r.Get("/session", s.handleSession)
	r.Post("/navigate", s.handleNavigate)
	r.Post("/pages/{id}/activate", s.handleActivate)
	r.Post("/reload", s.handleReload)
	r.Post("/mode", s.handleMode)
	r.Get("/panel", s.handlePanel)
	r.Post("/panel/tab", s.handleTab)
	r.Post("/panel/refresh", s.handleRefresh)
	r.Post("/canvas/click", s.handleClick)
	r.Post("/save", s.handleSave)
	r.Post("/publish", s.handlePublish)
}

type sessionResponse struct {
	Session string `json:"session"`
	PageID  string `json:"page"`
	File    string `json:"file"`
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.editor.Project()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "project not loaded")
		return
	}
	type pageEntry struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		File    string `json:"file"`
		Preview string `json:"preview,omitempty"`
		IsHome  bool   `json:"isHome"`
	}
	pages := make([]pageEntry, 0, len(p.Pages))
	for _, page := range p.Pages {
		pages = append(pages, pageEntry{ID: page.ID, Label: page.Label(), File: page.File, Preview: page.Preview, IsHome: page.IsHome})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":         p.Name,
		"templatePath": p.TemplatePath,
		"fallback":     p.Fallback,
		"pages":        pages,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.State())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.editor.Navigate(r.URL.Query().Get("page"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, sessionResponse{Session: sess.ID(), PageID: sess.Page().ID, File: sess.Page().File})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.editor.ActivateID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, sessionResponse{Session: sess.ID(), PageID: sess.Page().ID, File: sess.Page().File})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.editor.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, sessionResponse{Session: sess.ID(), PageID: sess.Page().ID, File: sess.Page().File})
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := mode.Parse(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.editor.SetMode(m); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.editor.State())
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Panel())
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Unknown tabs are not an error: every panel is simply hidden.
	s.editor.RouteTab(req.Tab)
	writeJSON(w, http.StatusOK, s.editor.Panel())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.editor.RefreshPanel()
	writeJSON(w, http.StatusOK, s.editor.Panel())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selector string `json:"selector"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Selector == "" {
		writeError(w, http.StatusBadRequest, "selector is required")
		return
	}
	res, err := s.editor.Click(req.Selector)
	switch {
	case errors.Is(err, canvas.ErrNoTarget), errors.Is(err, editor.ErrNoPage):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.persistResult(w, s.editor.Save(r.Context()), "saved")
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.persistResult(w, s.editor.Publish(r.Context()), "published")
}

func (s *Server) persistResult(w http.ResponseWriter, err error, status string) {
	switch {
	case errors.Is(err, persist.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, err.Error())
	case err != nil:
		s.log.Error("persistence failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	}
}

// handleCanvas serves the loaded document with its live edit state.
func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	markup, ok := s.editor.Markup()
	if !ok {
		http.Error(w, "no accessible document", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write([]byte("<!DOCTYPE html>\n" + markup))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
