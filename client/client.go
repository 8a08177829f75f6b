// Package client is a Go consumer for the realtime endpoint: it dials with
// a bearer token, exposes join/leave helpers, and streams server events.
// Used by the e2e suite and by backend services that want to observe live
// notifications.
package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one server-to-client frame.
type Event struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

type control struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	events  chan Event
}

// Dial connects to the realtime endpoint, e.g. ws://localhost:8080/ws,
// authenticating with the given bearer token. The events channel closes
// when the connection drops.
func Dial(ctx context.Context, serverURL, token string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", serverURL, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %s)", serverURL, err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	c := &Client{conn: conn, events: make(chan Event, 32)}
	go c.readLoop()
	return c, nil
}

// Events streams server frames in arrival order.
func (c *Client) Events() <-chan Event { return c.events }

func (c *Client) JoinWorkspace(id string) error { return c.send("join:workspace", id) }

func (c *Client) LeaveWorkspace(id string) error { return c.send("leave:workspace", id) }

func (c *Client) JoinProject(id string) error { return c.send("join:project", id) }

func (c *Client) LeaveProject(id string) error { return c.send("leave:project", id) }

func (c *Client) JoinTask(id string) error { return c.send("join:task", id) }

func (c *Client) LeaveTask(id string) error { return c.send("leave:task", id) }

func (c *Client) StartTyping(taskID string) error { return c.send("typing:start", taskID) }

func (c *Client) StopTyping(taskID string) error { return c.send("typing:stop", taskID) }

func (c *Client) send(msgType, id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(control{Type: msgType, ID: id})
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var evt Event
		if err := c.conn.ReadJSON(&evt); err != nil {
			return
		}
		c.events <- evt
	}
}
