package chat

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	turnTimeout    = 120 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsTurn is one user message arriving over the socket
type wsTurn struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// wsReply is one assistant reply sent back over the socket
type wsReply struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

// wsConn pairs a websocket connection with its outbound reply queue
type wsConn struct {
	service *Service
	conn    *websocket.Conn
	send    chan wsReply
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	ws := &wsConn{
		service: s.service,
		conn:    conn,
		send:    make(chan wsReply, 16),
	}

	go ws.writePump()
	ws.readPump()
}

// readPump reads user turns and dispatches each one to the service. Replies
// are queued rather than written directly so the ping loop owns the writer.
func (ws *wsConn) readPump() {
	defer func() {
		close(ws.send)
		ws.conn.Close()
	}()

	ws.conn.SetReadLimit(maxMessageSize)
	ws.conn.SetReadDeadline(time.Now().Add(pongWait))
	ws.conn.SetPongHandler(func(string) error {
		ws.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var turn wsTurn
		if err := ws.conn.ReadJSON(&turn); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		reply := ws.service.HandleTurn(ctx, turn.ConversationID, turn.Message)
		cancel()

		ws.send <- wsReply{ConversationID: turn.ConversationID, Reply: reply}
	}
}

// writePump drains the reply queue and keeps the connection alive with pings
func (ws *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.conn.Close()
	}()

	for {
		select {
		case reply, ok := <-ws.send:
			ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				ws.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.conn.WriteJSON(reply); err != nil {
				return
			}
		case <-ticker.C:
			ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
