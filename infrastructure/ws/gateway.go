package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/elhassanefek/projectify-sub000/auth"
	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/domain/event"
	"github.com/elhassanefek/projectify-sub000/errors"
	"github.com/elhassanefek/projectify-sub000/runtime"
)

// Config bounds one connection's resource usage.
type Config struct {
	SendBufferSize int
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

// Gateway accepts persistent connections, authenticates them, and drives
// the presence and channel indexes across each connection's lifecycle. It
// writes no business data; all side effects here are logging and index
// maintenance.
type Gateway struct {
	log      *slog.Logger
	tokens   *auth.TokenManager
	presence *runtime.Presence
	channels *runtime.Channels
	bus      contract.Bus
	stats    *runtime.Stats
	upgrader websocket.Upgrader
	cfg      Config
}

func NewGateway(log *slog.Logger, tokens *auth.TokenManager, presence *runtime.Presence,
	channels *runtime.Channels, bus contract.Bus, stats *runtime.Stats, cfg Config) *Gateway {
	return &Gateway{
		log:      log,
		tokens:   tokens,
		presence: presence,
		channels: channels,
		bus:      bus,
		stats:    stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy belongs to the fronting proxy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		cfg: cfg,
	}
}

// ServeHTTP is the handshake: authenticate first, upgrade second. A
// rejected credential tears the attempt down before any channel is joined.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := g.tokens.Authenticate(r)
	if err != nil {
		g.log.Warn("connection rejected", "remote", r.RemoteAddr, "error", err)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := newClient(conn, identity, g.cfg.SendBufferSize, g.log)
	g.register(client)
	go client.writePump(g.cfg.WriteWait, g.cfg.PongWait)
	g.readLoop(client)
}

// register auto-joins the identity channel and records presence. The
// identity channel is how direct (per-user) notifications reach every one
// of the user's devices.
func (g *Gateway) register(client *Client) {
	userID := client.Identity()
	g.channels.Join(client, runtime.IdentityChannel(userID))
	first := g.presence.Register(userID, client)
	g.stats.Connections.Add(1)

	g.log.Info("client connected", "connection", client.ID(), "user", userID, "first_device", first)

	if first {
		_ = g.bus.Publish(event.UserOnline, event.PresencePayload{UserID: userID})
	}
}

// unregister is the sole cancellation path: immediate, unconditional
// cleanup of every membership and the presence entry.
func (g *Gateway) unregister(client *Client) {
	client.close()
	g.channels.LeaveAll(client.ID())
	userID := client.Identity()
	last := g.presence.Unregister(userID, client.ID())
	g.stats.Connections.Add(-1)

	g.log.Info("client disconnected", "connection", client.ID(), "user", userID, "last_device", last)

	if last {
		_ = g.bus.Publish(event.UserOffline, event.PresencePayload{UserID: userID})
	}
}

// readLoop processes client control messages in arrival order until the
// socket errors out, then cleans up.
func (g *Gateway) readLoop(client *Client) {
	defer g.unregister(client)

	client.conn.SetReadLimit(g.cfg.MaxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(g.cfg.PongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(g.cfg.PongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Debug("read failed", "connection", client.ID(), "error", err)
			}
			return
		}
		g.handleControl(client, raw)
	}
}

func (g *Gateway) handleControl(client *Client, raw []byte) {
	var msg controlMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		g.log.Warn("ignoring malformed control message", "connection", client.ID(), "error", err)
		return
	}
	if msg.ID == "" {
		g.log.Warn("ignoring control message without entity id", "connection", client.ID(), "type", msg.Type)
		return
	}

	if derive, ok := joinChannels[msg.Type]; ok {
		g.channels.Join(client, derive(msg.ID))
		g.log.Debug("joined channel", "connection", client.ID(), "channel", derive(msg.ID))
		return
	}
	if derive, ok := leaveChannels[msg.Type]; ok {
		g.channels.Leave(client.ID(), derive(msg.ID))
		g.log.Debug("left channel", "connection", client.ID(), "channel", derive(msg.ID))
		return
	}

	switch msg.Type {
	case ctrlTypingStart:
		_ = g.bus.Publish(event.TypingStarted, event.TypingPayload{UserID: client.Identity(), TaskID: msg.ID})
	case ctrlTypingStop:
		_ = g.bus.Publish(event.TypingStopped, event.TypingPayload{UserID: client.Identity(), TaskID: msg.ID})
	default:
		g.log.Warn("dropping control message", "connection", client.ID(), "type", msg.Type,
			"error", errors.ErrUnknownControl)
	}
}
