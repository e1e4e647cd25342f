package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local control surface
	},
}

// Subscriber provides the forwarded command feed.
type Subscriber interface {
	Subscribe() (<-chan gesture.Command, func())
}

// CommandsHandler streams every forwarded command to WebSocket clients as a
// JSON text message.
type CommandsHandler struct {
	feed   Subscriber
	logger *zap.Logger
}

// NewCommandsHandler creates a CommandsHandler reading from feed.
func NewCommandsHandler(feed Subscriber, logger *zap.Logger) *CommandsHandler {
	return &CommandsHandler{feed: feed, logger: logging.OrNop(logger)}
}

type commandMessage struct {
	gesture.Command
	Timestamp int64 `json:"timestamp"`
}

// ServeHTTP upgrades the connection and forwards commands until the client
// goes away or the feed closes.
func (h *CommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	commands, cancel := h.feed.Subscribe()
	defer cancel()

	// Reads only detect the close; clients never send anything meaningful.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			msg := commandMessage{Command: cmd, Timestamp: time.Now().UnixMilli()}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
