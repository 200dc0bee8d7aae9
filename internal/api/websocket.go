// websocket.go - Run progress feed for the browser UI
package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/models"
	"github.com/doc-scanner/client/internal/scan"
)

// WebSocket message types for the scan progress protocol.
const (
	MsgTypeConnected = "connected"
	MsgTypeState     = "state"
	MsgTypePing      = "ping"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for every frame on the progress feed.
type WSMessage struct {
	Type      string           `json:"type"`
	State     *models.RunState `json:"state,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// wsConn serializes writes to one connection; the reader goroutine
// answers pings while the main loop pushes state updates.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) send(msg WSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg.Timestamp = time.Now().UnixMilli()
	c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.ws.WriteJSON(msg)
}

// WebSocketHandler pushes run state transitions to connected clients.
type WebSocketHandler struct {
	orchestrator *scan.Orchestrator
	upgrader     websocket.Upgrader
}

// NewWebSocketHandler creates a progress feed handler.
func NewWebSocketHandler(orchestrator *scan.Orchestrator) *WebSocketHandler {
	return &WebSocketHandler{
		orchestrator: orchestrator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local UI only; the server binds to loopback by default.
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and streams run state
// snapshots until the client goes away. The current state is sent
// immediately so late joiners see in-flight progress.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Client connected for scan progress")

	conn := &wsConn{ws: ws}

	updates, cancel := wsh.orchestrator.Subscribe()
	defer cancel()

	state := wsh.orchestrator.State()
	if err := conn.send(WSMessage{Type: MsgTypeConnected, State: &state}); err != nil {
		return nil
	}

	// Reader goroutine: answers pings and detects disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg WSMessage
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == MsgTypePing {
				conn.send(WSMessage{Type: MsgTypePong})
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := conn.send(WSMessage{Type: MsgTypeState, State: &update}); err != nil {
				return nil
			}
		}
	}
}
