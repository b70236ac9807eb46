package server

import (
	"net/http"
	"time"

	"arena-server/pkg/api"
	"arena-server/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	server   *Server
	Conn     *websocket.Conn
	Codec    api.Codec
	PlayerID string

	updates <-chan api.ServerMessage
	log     *logrus.Entry
}

func NewClient(s *Server, conn *websocket.Conn, codec api.Codec, playerID string) *Client {
	return &Client{
		server:   s,
		Conn:     conn,
		Codec:    codec,
		PlayerID: playerID,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"player_id": playerID,
			"codec":     codec.Name(),
		}),
	}
}

// start подписывает клиента на Hub раньше, чем движок отправит playerInit
func (c *Client) start() {
	c.updates = c.server.Hub.Register(c.PlayerID)
	c.server.Engine.Connect(c.PlayerID)

	go c.writePump()
	go c.readPump()
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.server.Engine.Disconnect(c.PlayerID)
		c.server.Hub.Unregister(c.PlayerID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		cmd, err := c.Codec.DecodeCommand(data)
		if err != nil {
			c.log.WithError(err).Debug("Malformed command dropped")
			continue
		}
		c.server.Engine.ProcessCommand(c.PlayerID, cmd, c.Codec)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	frame := websocket.TextMessage
	if c.Codec.Binary() {
		frame = websocket.BinaryMessage
	}

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}

			data, err := c.Codec.Marshal(message)
			if err != nil {
				c.log.WithError(err).WithField("type", message.Type).Error("encode message failed")
				continue
			}
			if err := c.Conn.WriteMessage(frame, data); err != nil {
				c.log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
