package runtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/elhassanefek/projectify-sub000/contract"
)

// Channel keys are pure derivations from an entity kind and id, stable and
// collision-free across kinds. A channel exists implicitly: it appears on
// first join and vanishes when its last member leaves.

func IdentityChannel(userID string) string { return "identity:" + userID }

func WorkspaceChannel(workspaceID string) string { return "workspace:" + workspaceID }

func ProjectChannel(projectID string) string { return "project:" + projectID }

func TaskChannel(taskID string) string { return "task:" + taskID }

type channelShard struct {
	mu sync.RWMutex
	// channel key -> connection handle -> connection
	members map[string]map[uuid.UUID]contract.Conn
}

type membershipShard struct {
	mu sync.RWMutex
	// connection handle -> set of channel keys
	channels map[uuid.UUID]map[string]struct{}
}

// Channels tracks which connections belong to which named channels, with a
// reverse index so disconnect cleanup never scans every channel. Forward and
// reverse indexes are sharded independently; a lock is only ever held on one
// side at a time.
type Channels struct {
	forward [shardCount]*channelShard
	reverse [shardCount]*membershipShard
}

func NewChannels() *Channels {
	c := &Channels{}
	for i := range c.forward {
		c.forward[i] = &channelShard{members: make(map[string]map[uuid.UUID]contract.Conn)}
		c.reverse[i] = &membershipShard{channels: make(map[uuid.UUID]map[string]struct{})}
	}
	return c
}

func (c *Channels) forwardShard(channel string) *channelShard {
	return c.forward[shardFor(channel)]
}

func (c *Channels) reverseShard(connID uuid.UUID) *membershipShard {
	return c.reverse[shardFor(connID.String())]
}

// Join is idempotent: re-joining an already joined channel is a no-op.
func (c *Channels) Join(conn contract.Conn, channel string) {
	fs := c.forwardShard(channel)
	fs.mu.Lock()
	set, ok := fs.members[channel]
	if !ok {
		set = make(map[uuid.UUID]contract.Conn)
		fs.members[channel] = set
	}
	set[conn.ID()] = conn
	fs.mu.Unlock()

	rs := c.reverseShard(conn.ID())
	rs.mu.Lock()
	keys, ok := rs.channels[conn.ID()]
	if !ok {
		keys = make(map[string]struct{})
		rs.channels[conn.ID()] = keys
	}
	keys[channel] = struct{}{}
	rs.mu.Unlock()
}

func (c *Channels) Leave(connID uuid.UUID, channel string) {
	c.removeMember(connID, channel)

	rs := c.reverseShard(connID)
	rs.mu.Lock()
	if keys, ok := rs.channels[connID]; ok {
		delete(keys, channel)
		if len(keys) == 0 {
			delete(rs.channels, connID)
		}
	}
	rs.mu.Unlock()
}

// LeaveAll removes the connection from every channel it joined and clears
// its reverse entry. Called once on disconnect; the identity channel is left
// like any other.
func (c *Channels) LeaveAll(connID uuid.UUID) {
	rs := c.reverseShard(connID)
	rs.mu.Lock()
	keys := rs.channels[connID]
	delete(rs.channels, connID)
	rs.mu.Unlock()

	for channel := range keys {
		c.removeMember(connID, channel)
	}
}

func (c *Channels) removeMember(connID uuid.UUID, channel string) {
	fs := c.forwardShard(channel)
	fs.mu.Lock()
	defer fs.mu.Unlock()

	set, ok := fs.members[channel]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(fs.members, channel)
	}
}

// MembersOf returns a snapshot of the channel's current connections.
func (c *Channels) MembersOf(channel string) []contract.Conn {
	fs := c.forwardShard(channel)
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	set := fs.members[channel]
	conns := make([]contract.Conn, 0, len(set))
	for _, conn := range set {
		conns = append(conns, conn)
	}
	return conns
}

// ChannelsOf returns the channel keys the connection currently belongs to.
func (c *Channels) ChannelsOf(connID uuid.UUID) []string {
	rs := c.reverseShard(connID)
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	keys := make([]string, 0, len(rs.channels[connID]))
	for channel := range rs.channels[connID] {
		keys = append(keys, channel)
	}
	return keys
}

// ChannelCount reports how many channels currently have members.
func (c *Channels) ChannelCount() int {
	total := 0
	for _, fs := range c.forward {
		fs.mu.RLock()
		total += len(fs.members)
		fs.mu.RUnlock()
	}
	return total
}
