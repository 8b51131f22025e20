package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/XS227/StreamerSite/internal/editor"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Root     string // application root served as static assets
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server hosts one editor session over HTTP and websocket.
type Server struct {
	cfg         Config
	editor      *editor.Editor
	log         hclog.Logger
	hub         *hub
	unsubscribe func()
	router      chi.Router
	httpServer  *http.Server
}

// New creates the server and subscribes it to editor events.
func New(cfg Config, ed *editor.Editor, log hclog.Logger) *Server {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	s := &Server{
		cfg:    cfg,
		editor: ed,
		log:    log,
		hub:    newHub(log.Named("ws")),
	}
	s.unsubscribe = ed.Subscribe(s.hub.broadcast)
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		s.registerAPI(r)
	})
	r.Get("/canvas", s.handleCanvas)
	r.Get("/ws", s.handleWebSocket)

	if s.cfg.Root != "" {
		r.Handle("/*", s.assets())
	}
	return r
}

// assets serves the application root without caching or directory listings.
// Loading the host page with ?page= opens that page on the canvas.
func (s *Server) assets() http.Handler {
	fs := http.FileServer(http.Dir(s.cfg.Root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.URL.Query().Has("page") {
			if _, err := s.editor.Navigate(r.URL.Query().Get("page")); err != nil {
				s.log.Warn("deep link not resolved", "page", r.URL.Query().Get("page"), "error", err)
			}
		}
		if strings.HasSuffix(r.URL.Path, "/") {
			_, err := os.Stat(filepath.Join(s.cfg.Root, filepath.FromSlash(r.URL.Path), "index.html"))
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fs.ServeHTTP(w, r)
	})
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("editor listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listener, disconnects websocket clients and detaches
// from the editor.
func (s *Server) Shutdown(ctx context.Context) error {
	s.unsubscribe()
	s.hub.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
