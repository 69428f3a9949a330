package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Hub fans analysis updates out to every connected viewer. Connections
// that fail a write are dropped and closed.
type Hub struct {
	mu      sync.Mutex
	viewers map[*websocket.Conn]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{viewers: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.viewers[conn] = struct{}{}
	count := len(h.viewers)
	h.mu.Unlock()
	h.logger.Debug("viewer connected", zap.Int("viewers", count))
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.viewers, conn)
	count := len(h.viewers)
	h.mu.Unlock()
	h.logger.Debug("viewer disconnected", zap.Int("viewers", count))
}

func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.viewers {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			h.logger.Warn("dropping viewer after failed write", zap.Error(err))
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.viewers, conn)
		}
	}
	h.mu.Unlock()
}
