package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/infrastructure/logging"
	"github.com/cyberproxy/backend/internal/infrastructure/monitoring"
	"github.com/cyberproxy/backend/internal/shared/types"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Frontend origin varies per deployment
	},
}

// Handler streams session snapshots to connected frontends. Every store
// mutation produces a push; clients never need to poll.
type Handler struct {
	store   *session.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(store *session.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// WithMetrics adds connection gauge tracking
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// conn wraps a websocket connection with a write lock, since snapshot
// pushes and read-loop replies come from different goroutines.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(data)
}

// HandleConnection handles WebSocket upgrade, snapshot pushes, and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	client := &conn{ws: ws}
	defer ws.Close()

	connID := uuid.New().String()
	h.logger.Info("WebSocket connected", zap.String("conn_id", connID))
	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	client.send(map[string]interface{}{
		"type":    "system",
		"message": "Connected to CyberProxy Backend",
		"conn_id": connID,
	})

	// The subscription delivers the current state first, then a snapshot
	// after every mutation
	token, updates := h.store.Subscribe()
	defer h.store.Unsubscribe(token)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for snapshot := range updates {
			payload := map[string]interface{}{
				"type":      "snapshot",
				"snapshot":  snapshot,
				"timestamp": time.Now().Unix(),
			}
			if err := client.send(payload); err != nil {
				h.logger.Debug("WebSocket push failed", zap.String("conn_id", connID), zap.Error(err))
				return
			}
		}
	}()

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			h.logger.Info("WebSocket disconnected", zap.String("conn_id", connID))
			break
		}

		switch msg.Type {
		case "ping":
			client.send(map[string]interface{}{"type": "pong"})
		case "snapshot":
			client.send(map[string]interface{}{
				"type":     "snapshot",
				"snapshot": h.store.Snapshot(),
			})
		default:
			client.send(map[string]interface{}{
				"type":    "error",
				"message": "unknown message type",
			})
		}
	}

	h.store.Unsubscribe(token)
	<-done
}
