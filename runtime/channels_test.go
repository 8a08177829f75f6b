package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelKeys_StableAndCollisionFreeAcrossKinds(t *testing.T) {
	req := require.New(t)

	req.Equal("identity:u1", IdentityChannel("u1"))
	req.Equal("workspace:w1", WorkspaceChannel("w1"))
	req.Equal("project:p1", ProjectChannel("p1"))
	req.Equal("task:t1", TaskChannel("t1"))

	// Same id, different kinds: distinct channels
	req.NotEqual(WorkspaceChannel("42"), ProjectChannel("42"))
	req.NotEqual(ProjectChannel("42"), TaskChannel("42"))
}

func TestChannels_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	channels := NewChannels()
	conn := newFakeConn("alice")

	// When the same channel is joined twice
	channels.Join(conn, ProjectChannel("p1"))
	channels.Join(conn, ProjectChannel("p1"))

	// Then membership holds a single entry on both indexes
	req.Len(channels.MembersOf(ProjectChannel("p1")), 1)
	req.Equal([]string{ProjectChannel("p1")}, channels.ChannelsOf(conn.ID()))
}

func TestChannels_LeaveRemovesBothIndexes(t *testing.T) {
	req := require.New(t)
	channels := NewChannels()
	conn := newFakeConn("alice")
	channels.Join(conn, ProjectChannel("p1"))
	channels.Join(conn, TaskChannel("t1"))

	channels.Leave(conn.ID(), ProjectChannel("p1"))

	req.Empty(channels.MembersOf(ProjectChannel("p1")))
	req.Equal([]string{TaskChannel("t1")}, channels.ChannelsOf(conn.ID()))
}

func TestChannels_LastLeaveRemovesChannelEntirely(t *testing.T) {
	req := require.New(t)
	channels := NewChannels()
	conn := newFakeConn("alice")
	channels.Join(conn, TaskChannel("t1"))
	req.Equal(1, channels.ChannelCount())

	channels.Leave(conn.ID(), TaskChannel("t1"))

	// Channels exist implicitly: no members, no channel
	req.Zero(channels.ChannelCount())
}

func TestChannels_LeaveAllClearsEveryMembership(t *testing.T) {
	req := require.New(t)
	channels := NewChannels()
	conn := newFakeConn("alice")
	other := newFakeConn("bob")

	// Given a connection subscribed to several channels
	keys := []string{
		IdentityChannel("alice"),
		WorkspaceChannel("w1"),
		ProjectChannel("p1"),
		TaskChannel("t1"),
	}
	for _, key := range keys {
		channels.Join(conn, key)
	}
	channels.Join(other, ProjectChannel("p1"))

	// When the connection disconnects
	channels.LeaveAll(conn.ID())

	// Then it is absent from every channel's membership set
	for _, key := range keys {
		for _, member := range channels.MembersOf(key) {
			req.NotEqual(conn.ID(), member.ID())
		}
	}
	req.Empty(channels.ChannelsOf(conn.ID()))

	// And other members are untouched
	req.Len(channels.MembersOf(ProjectChannel("p1")), 1)
}

func TestChannels_MembersOfUnknownChannelIsEmpty(t *testing.T) {
	require.Empty(t, NewChannels().MembersOf(ProjectChannel("nope")))
}
