package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"campus-portal-backend/internal/models"
)

const writeWait = 10 * time.Second

type snapshotSource interface {
	Snapshot(ctx context.Context) (*models.RealtimeSnapshot, error)
}

// Hub streams realtime snapshots to every connected dashboard. Each
// connection gets one writer goroutine; a reader goroutine only watches for
// the client going away.
type Hub struct {
	mu          sync.Mutex
	connections map[*websocket.Conn]context.CancelFunc
	source      snapshotSource
	interval    time.Duration
	upgrader    websocket.Upgrader
	logger      *slog.Logger
	closed      bool
}

func NewHub(source snapshotSource, interval time.Duration, allowedOrigins []string, logger *slog.Logger) *Hub {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		connections: make(map[*websocket.Conn]context.CancelFunc),
		source:      source,
		interval:    interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// originChecker accepts requests without an Origin header, a "*" entry, or
// an exact match against allowed.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err != nil || u.Host == "" {
			return false
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if !h.registerConnection(conn, cancel) {
		cancel()
		conn.Close()
		return
	}

	// Keep connection alive and handle disconnect
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go h.writeLoop(ctx, conn)
}

func (h *Hub) writeLoop(ctx context.Context, conn *websocket.Conn) {
	defer h.unregisterConnection(conn)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.push(ctx, conn); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
		}
	}
}

func (h *Hub) push(ctx context.Context, conn *websocket.Conn) error {
	snapshot, err := h.source.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "realtime snapshot failed", slog.Any("error", err))
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(models.WSMessage{Type: "realtime", Payload: snapshot})
}

func (h *Hub) registerConnection(conn *websocket.Conn, cancel context.CancelFunc) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.connections[conn] = cancel
	h.logger.Info("websocket connected", slog.Int("total", len(h.connections)))
	return true
}

func (h *Hub) unregisterConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	if cancel, ok := h.connections[conn]; ok {
		cancel()
		delete(h.connections, conn)
		h.logger.Info("websocket disconnected", slog.Int("total", len(h.connections)))
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close stops every stream and refuses new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	cancels := make([]context.CancelFunc, 0, len(h.connections))
	for _, cancel := range h.connections {
		cancels = append(cancels, cancel)
	}
	h.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
