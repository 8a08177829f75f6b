package runtime

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/elhassanefek/projectify-sub000/contract"
)

// Dispatcher turns a (target, event, data) triple into actual fan-out over
// live connections. Every operation returns a structured result instead of
// an error: delivery is best-effort and a transport failure must never
// destabilize the business flow that triggered it.
type Dispatcher struct {
	log      *slog.Logger
	presence *Presence
	channels *Channels
	stats    *Stats
	now      func() time.Time
}

func NewDispatcher(log *slog.Logger, presence *Presence, channels *Channels, stats *Stats) *Dispatcher {
	return &Dispatcher{
		log:      log,
		presence: presence,
		channels: channels,
		stats:    stats,
		now:      time.Now,
	}
}

var _ contract.Dispatcher = (*Dispatcher)(nil)

// EmitToIdentities delivers to every live connection of every listed
// identity. Offline identities contribute nothing.
func (d *Dispatcher) EmitToIdentities(identities []string, event string, data map[string]any) contract.DispatchResult {
	seen := make(map[uuid.UUID]struct{})
	var conns []contract.Conn
	for _, identity := range identities {
		for _, conn := range d.presence.ConnectionsOf(identity) {
			if _, dup := seen[conn.ID()]; dup {
				continue
			}
			seen[conn.ID()] = struct{}{}
			conns = append(conns, conn)
		}
	}
	return d.deliver(conns, event, "identities", data)
}

// EmitToChannel delivers to every connection currently in the channel.
func (d *Dispatcher) EmitToChannel(channel string, event string, data map[string]any) contract.DispatchResult {
	return d.deliver(d.channels.MembersOf(channel), event, channel, data)
}

// BroadcastExcluding delivers to every channel member except the live
// connections currently belonging to excludedIdentity. The exclusion set is
// computed at dispatch time as a set difference over connection handles;
// when the excluded identity is offline this degenerates to EmitToChannel.
func (d *Dispatcher) BroadcastExcluding(channel string, excludedIdentity string, event string, data map[string]any) contract.DispatchResult {
	members := d.channels.MembersOf(channel)

	excluded := lo.SliceToMap(d.presence.ConnectionsOf(excludedIdentity),
		func(c contract.Conn) (uuid.UUID, struct{}) { return c.ID(), struct{}{} })

	targets := lo.Filter(members, func(c contract.Conn, _ int) bool {
		_, skip := excluded[c.ID()]
		return !skip
	})
	return d.deliver(targets, event, channel, data)
}

// EmitToAll is the global fan-out, reserved for rare system-wide notices.
func (d *Dispatcher) EmitToAll(event string, data map[string]any) contract.DispatchResult {
	return d.deliver(d.presence.AllConnections(), event, "*", data)
}

// deliver stamps the server timestamp and pushes the frame to each target.
// No relative delivery order is guaranteed inside one fan-out.
func (d *Dispatcher) deliver(conns []contract.Conn, event, target string, data map[string]any) contract.DispatchResult {
	payload := lo.Assign(map[string]any{}, data)
	payload["timestamp"] = d.now().UTC()

	var delivered, dropped int
	var firstErr error
	for _, conn := range conns {
		if err := conn.Send(event, payload); err != nil {
			dropped++
			if firstErr == nil {
				firstErr = err
			}
			d.log.Warn("delivery failed",
				"event", event,
				"target", target,
				"connection", conn.ID(),
				"user", conn.Identity(),
				"error", err)
			continue
		}
		delivered++
	}

	d.stats.Dispatches.Add(1)
	d.stats.Delivered.Add(uint64(delivered))
	d.stats.Dropped.Add(uint64(dropped))

	return contract.DispatchResult{
		Success:   dropped == 0,
		Event:     event,
		Target:    target,
		Delivered: delivered,
		Dropped:   dropped,
		Err:       firstErr,
	}
}
