package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 << 20 // requests may carry a base64 spreadsheet
)

// Frame types sent to the browser.
const (
	FrameStart  = "start"
	FrameDelta  = "delta"
	FrameFinish = "finish"
	FrameError  = "error"
)

// Client is one websocket connection streaming a single generated note.
type Client struct {
	ID  string
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound frames. Never closed; closing is
	// signalled through done.
	Send chan []byte

	done      chan struct{}
	closeOnce sync.Once
	logger    logger.ILogger
}

func NewClient(id string, hub *Hub, conn *websocket.Conn, log logger.ILogger) *Client {
	return &Client{
		ID:     id,
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		logger: log,
	}
}

// Close asks the write pump to flush queued frames and close the socket.
// Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Done is closed once the client is shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// SendFrame queues a frame. It reports false once the client is closed.
func (c *Client) SendFrame(ctx context.Context, frame dto.ChatStreamFrame) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		return false
	}
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// readPump delivers the first text message to onRequest and then keeps
// reading so pongs and the close handshake are processed. It returns when
// the peer goes away.
func (c *Client) readPump(onRequest func(raw []byte)) {
	defer func() {
		c.Hub.unregister <- c
		c.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	started := false
	for {
		msgType, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WS", "Unexpected close", map[string]interface{}{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			return
		}
		if msgType != websocket.TextMessage || started {
			continue
		}
		started = true
		onRequest(raw)
	}
}

// writePump writes queued frames one websocket message each and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			if !c.write(message) {
				return
			}
		case <-c.done:
			for n := len(c.Send); n > 0; n-- {
				if !c.write(<-c.Send) {
					return
				}
			}
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(message []byte) bool {
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Warn("WS", "Write failed", map[string]interface{}{
			"client_id": c.ID,
			"error":     err.Error(),
		})
		return false
	}
	return true
}
