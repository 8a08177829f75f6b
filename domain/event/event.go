// Package event defines the domain event contracts published by the
// business services after a committed mutation, and the handler modules
// translating them into client notifications.
//
// Naming is canonical end-to-end: bus-side names are dot-separated
// (task.created), wire-side names pushed to clients are colon-separated
// (task:created). The mapping lives in the notifier wrappers.
package event

// Bus-side event names. The producer contract is (name, payload) where the
// payload must be the matching struct below.
const (
	TaskCreated         = "task.created"
	TaskUpdated         = "task.updated"
	TaskDeleted         = "task.deleted"
	TaskAssigned        = "task.assigned"
	TaskStatusChanged   = "task.status.changed"
	TaskPriorityChanged = "task.priority.changed"

	ProjectCreated     = "project.created"
	ProjectUpdated     = "project.updated"
	ProjectDeleted     = "project.deleted"
	ProjectMemberAdded = "project.member.added"

	WorkspaceCreated = "workspace.created"
	WorkspaceUpdated = "workspace.updated"
	WorkspaceDeleted = "workspace.deleted"

	CommentAdded   = "comment.added"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"

	NotificationCreated = "notification.created"
	NotificationRead    = "notification.read"

	UserOnline    = "user.online"
	UserOffline   = "user.offline"
	TypingStarted = "user.typing.started"
	TypingStopped = "user.typing.stopped"

	// HandlerError is the diagnostic event re-emitted by the bus when a
	// subscribed handler panics. Never re-emitted for itself.
	HandlerError = "handler.error"
)

// Wire-side event names pushed to connected clients.
const (
	WireTaskCreated         = "task:created"
	WireTaskUpdated         = "task:updated"
	WireTaskDeleted         = "task:deleted"
	WireTaskAssigned        = "task:assigned"
	WireTaskStatusChanged   = "task:status_changed"
	WireTaskPriorityChanged = "task:priority_changed"

	WireProjectCreated     = "project:created"
	WireProjectUpdated     = "project:updated"
	WireProjectDeleted     = "project:deleted"
	WireProjectMemberAdded = "project:member_added"

	WireWorkspaceCreated = "workspace:created"
	WireWorkspaceUpdated = "workspace:updated"
	WireWorkspaceDeleted = "workspace:deleted"

	WireCommentAdded   = "comment:added"
	WireCommentUpdated = "comment:updated"
	WireCommentDeleted = "comment:deleted"

	WireNotificationNew  = "notification:new"
	WireNotificationRead = "notification:read"

	WireUserTyping        = "user:typing"
	WireUserStoppedTyping = "user:stopped_typing"
	WireUserOnline        = "user:online"
	WireUserOffline       = "user:offline"
)

// Entity documents are opaque to this core: they are produced and consumed
// by the business collaborator, the core only carries them to the wire.

type TaskCreatedPayload struct {
	ProjectID string         `validate:"required"`
	Task      map[string]any `validate:"required"`
	CreatedBy string         `validate:"required"`
	// Optional: when the task is created already assigned, the assignee
	// additionally receives a task:assigned notification.
	AssigneeID string
	Message    string
}

type TaskUpdatedPayload struct {
	ProjectID string         `validate:"required"`
	Task      map[string]any `validate:"required"`
	UpdatedBy string         `validate:"required"`
	Changes   map[string]any `validate:"required"`
}

type TaskDeletedPayload struct {
	ProjectID string `validate:"required"`
	TaskID    string `validate:"required"`
	DeletedBy string `validate:"required"`
}

type TaskAssignedPayload struct {
	Task        map[string]any `validate:"required"`
	AssigneeIDs []string       `validate:"required,min=1,dive,required"`
	AssignedBy  string         `validate:"required"`
	Message     string
}

type TaskStatusChangedPayload struct {
	ProjectID string         `validate:"required"`
	TaskID    string         `validate:"required"`
	Task      map[string]any `validate:"required"`
	OldStatus string         `validate:"required"`
	NewStatus string         `validate:"required"`
	UpdatedBy string         `validate:"required"`
}

type TaskPriorityChangedPayload struct {
	ProjectID   string         `validate:"required"`
	TaskID      string         `validate:"required"`
	Task        map[string]any `validate:"required"`
	OldPriority string         `validate:"required"`
	NewPriority string         `validate:"required"`
	UpdatedBy   string         `validate:"required"`
}

type ProjectCreatedPayload struct {
	WorkspaceID string         `validate:"required"`
	Project     map[string]any `validate:"required"`
	CreatedBy   string         `validate:"required"`
}

type ProjectUpdatedPayload struct {
	WorkspaceID string         `validate:"required"`
	Project     map[string]any `validate:"required"`
	UpdatedBy   string         `validate:"required"`
}

type ProjectDeletedPayload struct {
	WorkspaceID string `validate:"required"`
	ProjectID   string `validate:"required"`
	DeletedBy   string `validate:"required"`
}

type ProjectMemberAddedPayload struct {
	ProjectID string `validate:"required"`
	MemberID  string `validate:"required"`
	AddedBy   string `validate:"required"`
	// Optional notification document delivered to the new member.
	Notification map[string]any
}

type WorkspaceCreatedPayload struct {
	Workspace map[string]any `validate:"required"`
	CreatedBy string         `validate:"required"`
}

type WorkspaceUpdatedPayload struct {
	WorkspaceID string         `validate:"required"`
	Workspace   map[string]any `validate:"required"`
	UpdatedBy   string         `validate:"required"`
}

type WorkspaceDeletedPayload struct {
	WorkspaceID string `validate:"required"`
	DeletedBy   string `validate:"required"`
}

type CommentAddedPayload struct {
	TaskID  string         `validate:"required"`
	Comment map[string]any `validate:"required"`
	Author  string         `validate:"required"`
}

type CommentUpdatedPayload struct {
	TaskID  string         `validate:"required"`
	Comment map[string]any `validate:"required"`
	Author  string         `validate:"required"`
}

type CommentDeletedPayload struct {
	TaskID    string `validate:"required"`
	CommentID string `validate:"required"`
	Author    string `validate:"required"`
}

type NotificationCreatedPayload struct {
	UserID       string         `validate:"required"`
	Notification map[string]any `validate:"required"`
}

type NotificationReadPayload struct {
	UserID         string `validate:"required"`
	NotificationID string `validate:"required"`
}

type PresencePayload struct {
	UserID string `validate:"required"`
}

type TypingPayload struct {
	UserID string `validate:"required"`
	TaskID string `validate:"required"`
}

// HandlerErrorPayload is emitted by the bus error boundary.
type HandlerErrorPayload struct {
	Event  string
	Reason string
}
