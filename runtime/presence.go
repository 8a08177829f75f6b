// Package runtime holds the real-time distribution core: presence and
// channel indexes, the in-process domain event bus, and the notification
// dispatcher. It contains no business rules; business services publish
// events and the pipeline here carries them to live connections.
package runtime

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/elhassanefek/projectify-sub000/contract"
)

// shardCount fixes the number of independent lock domains per index.
// Connect/disconnect for unrelated identities must not contend.
const shardCount = 32

func shardFor(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % shardCount
}

type presenceShard struct {
	mu sync.RWMutex
	// identity -> connection handle -> connection
	entries map[string]map[uuid.UUID]contract.Conn
}

// Presence maps each authenticated identity to its set of live connections.
// An identity has an entry iff it has at least one live connection; the
// entry is removed, not left empty, when the last one disconnects.
type Presence struct {
	shards [shardCount]*presenceShard
}

func NewPresence() *Presence {
	p := &Presence{}
	for i := range p.shards {
		p.shards[i] = &presenceShard{entries: make(map[string]map[uuid.UUID]contract.Conn)}
	}
	return p
}

func (p *Presence) shard(identity string) *presenceShard {
	return p.shards[shardFor(identity)]
}

// Register adds the connection to the identity's set, creating the entry on
// the first device. Reports whether this was the identity's first live
// connection, atomically with the insertion, so callers can detect the
// offline→online edge without a racy read-then-write.
func (p *Presence) Register(identity string, conn contract.Conn) (first bool) {
	s := p.shard(identity)
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.entries[identity]
	if !ok {
		set = make(map[uuid.UUID]contract.Conn)
		s.entries[identity] = set
	}
	first = len(set) == 0
	set[conn.ID()] = conn
	return first
}

// Unregister removes one connection and deletes the whole entry when it was
// the identity's last device. Reports whether the identity just went
// offline.
func (p *Presence) Unregister(identity string, connID uuid.UUID) (last bool) {
	s := p.shard(identity)
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.entries[identity]
	if !ok {
		return false
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(s.entries, identity)
		return true
	}
	return false
}

func (p *Presence) IsOnline(identity string) bool {
	s := p.shard(identity)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[identity]) > 0
}

// ConnectionsOf returns a snapshot of the identity's live connections.
// Empty when offline.
func (p *Presence) ConnectionsOf(identity string) []contract.Conn {
	s := p.shard(identity)
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.entries[identity]
	conns := make([]contract.Conn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}

// AllConnections snapshots every live connection across all identities.
// Reserved for rare system-wide fan-out.
func (p *Presence) AllConnections() []contract.Conn {
	var conns []contract.Conn
	for _, s := range p.shards {
		s.mu.RLock()
		for _, set := range s.entries {
			for _, c := range set {
				conns = append(conns, c)
			}
		}
		s.mu.RUnlock()
	}
	return conns
}

// OnlineCount reports the number of identities with at least one connection.
func (p *Presence) OnlineCount() int {
	total := 0
	for _, s := range p.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}
