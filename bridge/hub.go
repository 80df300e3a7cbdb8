package bridge

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/arbfarm/walletlink/logger"
)

// Hub accepts page relay connections and tracks live sessions by ID. It is
// an http.Handler: mount it on the dashboard server's /wallet/bridge route.
type Hub struct {
	log      logger.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]*Session),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("bridge upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	session := NewSession(conn, h.log, h.remove)

	h.mu.Lock()
	h.sessions[session.ID()] = session
	h.mu.Unlock()

	h.log.Info("bridge session opened", map[string]any{
		"session": session.ID(),
		"remote":  r.RemoteAddr,
	})
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID())
	h.mu.Unlock()

	h.log.Info("bridge session closed", map[string]any{"session": s.ID()})
}

// Session resolves a live session by ID.
func (h *Hub) Session(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// SessionIDs lists the live sessions.
func (h *Hub) SessionIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close shuts down every live session.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close()
	}
}
