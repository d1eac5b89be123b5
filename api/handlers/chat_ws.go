package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/config"
	"github.com/linesmerrill/legal-connect-api/messaging"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

type chatEvent struct {
	Event string           `json:"event"`
	Data  messaging.Update `json:"data"`
}

// ChatWebSocketHandler streams the conversation between the caller and receiver_id.
// Every frame is a complete snapshot. The subscription lives exactly as long as the
// connection.
func (c Chat) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	receiverID := mux.Vars(r)["receiver_id"]
	if receiverID == session.UserID {
		config.ErrorStatus("failed to open conversation", http.StatusBadRequest, w, errSelfChat)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// callbacks are serialised, so this is the only writer besides the pinger which
	// goes through WriteControl
	sub, err := c.Service.Subscribe(ctx, session.UserID, receiverID, func(u messaging.Update) {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(chatEvent{Event: "messages", Data: u}); err != nil {
			zap.S().Debugw("failed to write snapshot, closing", "connId", connID, "error", err)
			cancel()
		}
	})
	if err != nil {
		zap.S().Errorw("failed to subscribe", "connId", connID, "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer sub.Close()
	zap.S().Infow("User connected to chat stream", "connId", connID, "userId", session.UserID, "receiverId", receiverID)

	go c.keepAlive(ctx, cancel, conn)

	// Handle disconnect
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	cancel()
	zap.S().Infow("User disconnected from chat stream", "connId", connID, "userId", session.UserID)
}

func (c Chat) keepAlive(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// unblocks the read loop when delivery failed
			conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				cancel()
				return
			}
		}
	}
}
