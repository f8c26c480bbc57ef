package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
	sendBuffer = 64
)

type client struct {
	conn      *websocket.Conn
	sessionID string
	playerID  string
	send      chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("player", c.playerID).Msg("ws write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// message is the outbound frame.
type message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func encode(typ string, data any) []byte {
	b, err := json.Marshal(message{Type: typ, Data: data})
	if err != nil {
		log.Error().Err(err).Str("type", typ).Msg("encode ws message")
		return nil
	}
	return b
}
