package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mobivas/vas-platform/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser dashboards are served from a different origin in local
	// runs; transport-level origin policy is handled by the outer layer.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one observer connection. Outbound events go through a bounded
// send channel; the hub drops frames instead of blocking on a slow reader.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	send      chan []byte
	closeOnce sync.Once
}

// inboundMessage is the only observer-to-server frame: presence
// registration.
type inboundMessage struct {
	Type   string `json:"type"`
	MSISDN string `json:"msisdn"`
}

// ServeHTTP upgrades the connection and attaches it to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "operation", "ws_connect", "outcome", "failure", "error", err.Error())
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type != "register-user" {
			continue
		}
		msisdn, err := domain.NormalizeMSISDN(strings.TrimSpace(msg.MSISDN))
		if err != nil {
			continue
		}
		select {
		case c.hub.identify <- identity{client: c, msisdn: msisdn}:
		case <-c.hub.done:
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

// trySend queues a frame without blocking. Called only from the hub
// dispatch goroutine.
func (c *Client) trySend(payload []byte) {
	select {
	case c.send <- payload:
	default:
		// Slow consumer: drop the frame, at-most-once delivery allows it.
	}
}

// close releases the writer. Safe to call more than once; only the hub
// dispatch goroutine calls it.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}
