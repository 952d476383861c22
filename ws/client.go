package ws

import (
	"encoding/json"
	"time"

	"github.com/Juantrevi/next-match/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
)

// IncomingMessage is a client frame: subscribe / unsubscribe plus a channel.
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type subscribePayload struct {
	Channel string `json:"channel"`
}

type Client struct {
	UserID  string
	Conn    *websocket.Conn
	Send    chan OutgoingEvent
	Manager *Manager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMsgSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("websocket read error", "user_id", c.UserID)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.WithError(err).Debug("invalid websocket frame", "user_id", c.UserID)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				logger.WithError(err).Debug("websocket write error", "user_id", c.UserID)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case "subscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.Channel == "" {
			return
		}
		c.Manager.Subscribe(c, payload.Channel)

	case "unsubscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.Channel == "" {
			return
		}
		c.Manager.Unsubscribe(c, payload.Channel)

	default:
		logger.Debug("unhandled websocket action", "action", msg.Action, "user_id", c.UserID)
	}
}
