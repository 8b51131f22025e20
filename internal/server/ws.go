package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/XS227/StreamerSite/internal/editor"
	"github.com/XS227/StreamerSite/internal/mode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is an incoming command from the host UI.
type wsRequest struct {
	Type     string `json:"type"` // "mode", "tab", "navigate", "click"
	Mode     string `json:"mode,omitempty"`
	Tab      string `json:"tab,omitempty"`
	Page     string `json:"page,omitempty"`
	Selector string `json:"selector,omitempty"`
}

// wsMessage is everything written to a client: editor events, command
// replies and errors.
type wsMessage struct {
	Type  string              `json:"type"`
	Event *editor.Event       `json:"event,omitempty"`
	Click *editor.ClickResult `json:"click,omitempty"`
	Error string              `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan wsMessage
}

// hub fans editor events out to websocket clients. broadcast never blocks:
// a client that cannot keep up loses events.
type hub struct {
	log     hclog.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub(log hclog.Logger) *hub {
	return &hub{log: log, clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) broadcast(ev editor.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		msg := wsMessage{Type: "event", Event: &ev}
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping event for slow client", "event", ev.Type)
		}
	}
}

func (h *hub) reply(c *client, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.log.Warn("dropping reply for slow client", "type", msg.Type)
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan wsMessage, 64)}
	s.hub.add(c)
	defer s.hub.remove(c)

	go func() {
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				s.log.Debug("websocket write failed", "error", err)
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", "error", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.hub.reply(c, wsMessage{Type: "error", Error: "invalid message format"})
			continue
		}
		s.hub.reply(c, s.dispatch(req))
	}
}

func (s *Server) dispatch(req wsRequest) wsMessage {
	switch req.Type {
	case "mode":
		m, err := mode.Parse(req.Mode)
		if err != nil {
			return wsMessage{Type: "error", Error: err.Error()}
		}
		if err := s.editor.SetMode(m); err != nil {
			return wsMessage{Type: "error", Error: err.Error()}
		}
	case "tab":
		s.editor.RouteTab(req.Tab)
	case "navigate":
		if _, err := s.editor.Navigate(req.Page); err != nil {
			return wsMessage{Type: "error", Error: err.Error()}
		}
	case "click":
		res, err := s.editor.Click(req.Selector)
		if err != nil {
			return wsMessage{Type: "error", Error: err.Error()}
		}
		return wsMessage{Type: "ok", Click: &res}
	default:
		return wsMessage{Type: "error", Error: "unknown message type: " + req.Type}
	}
	return wsMessage{Type: "ok"}
}
