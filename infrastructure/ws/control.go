package ws

import "github.com/elhassanefek/projectify-sub000/runtime"

// controlMessage is the only client-to-server shape: a type plus one entity
// id. Anything else on the socket is ignored.
type controlMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Control message types.
const (
	ctrlJoinWorkspace  = "join:workspace"
	ctrlLeaveWorkspace = "leave:workspace"
	ctrlJoinProject    = "join:project"
	ctrlLeaveProject   = "leave:project"
	ctrlJoinTask       = "join:task"
	ctrlLeaveTask      = "leave:task"
	ctrlTypingStart    = "typing:start"
	ctrlTypingStop     = "typing:stop"
)

// joinChannels and leaveChannels resolve a control type to the deterministic
// channel key derivation for its scope.
var joinChannels = map[string]func(string) string{
	ctrlJoinWorkspace: runtime.WorkspaceChannel,
	ctrlJoinProject:   runtime.ProjectChannel,
	ctrlJoinTask:      runtime.TaskChannel,
}

var leaveChannels = map[string]func(string) string{
	ctrlLeaveWorkspace: runtime.WorkspaceChannel,
	ctrlLeaveProject:   runtime.ProjectChannel,
	ctrlLeaveTask:      runtime.TaskChannel,
}
