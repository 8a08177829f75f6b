// Package ws terminates the persistent connections: websocket handshake
// authentication, channel lifecycle control messages, and per-connection
// delivery pumps.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/elhassanefek/projectify-sub000/auth"
	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// frame is the wire shape of every server-to-client event.
type frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// Client is one live websocket session. It owns exactly one identity, set
// at handshake time, and implements contract.Conn for the dispatcher.
type Client struct {
	id       uuid.UUID
	identity auth.Identity
	conn     *websocket.Conn
	send     chan frame
	done     chan struct{}
	once     sync.Once
	log      *slog.Logger
}

var _ contract.Conn = (*Client)(nil)

func newClient(conn *websocket.Conn, identity auth.Identity, sendBuffer int, log *slog.Logger) *Client {
	return &Client{
		id:       uuid.New(),
		identity: identity,
		conn:     conn,
		send:     make(chan frame, sendBuffer),
		done:     make(chan struct{}),
		log:      log,
	}
}

func (c *Client) ID() uuid.UUID { return c.id }

func (c *Client) Identity() string { return c.identity.UserID }

// Send enqueues a frame for the write pump. It never blocks a fan-out: a
// full buffer means a slow client, and the frame is dropped rather than
// stalling delivery to everyone else.
func (c *Client) Send(event string, data map[string]any) error {
	select {
	case <-c.done:
		return errors.ErrConnectionClosed
	default:
	}

	select {
	case c.send <- frame{Event: event, Data: data}:
		return nil
	default:
		return errors.ErrSendBufferFull
	}
}

// close is idempotent; the read loop and the gateway teardown may race.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writePump serializes all writes to the socket: queued frames and liveness
// pings. gorilla/websocket allows a single concurrent writer, so this
// goroutine is the only one touching the write side.
func (c *Client) writePump(writeWait, pongWait time.Duration) {
	pingPeriod := pongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				c.log.Debug("write failed, closing connection",
					"connection", c.id, "user", c.identity.UserID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
