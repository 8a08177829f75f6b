package runtime

import (
	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/domain/event"
)

// Named convenience wrappers: each picks the right fan-out primitive for one
// wire event. Scoped entity events go to the parent scope's channel (task
// events to the project channel, project events to the workspace channel),
// direct notifications go to identities.

var (
	_ event.TaskNotifier         = (*Dispatcher)(nil)
	_ event.ProjectNotifier      = (*Dispatcher)(nil)
	_ event.WorkspaceNotifier    = (*Dispatcher)(nil)
	_ event.CommentNotifier      = (*Dispatcher)(nil)
	_ event.NotificationNotifier = (*Dispatcher)(nil)
	_ event.PresenceNotifier     = (*Dispatcher)(nil)
)

func (d *Dispatcher) TaskCreated(projectID string, task map[string]any, createdBy string) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireTaskCreated, map[string]any{
		"task":      task,
		"createdBy": createdBy,
	})
}

func (d *Dispatcher) TaskUpdated(projectID string, task map[string]any, updatedBy string, changes map[string]any) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireTaskUpdated, map[string]any{
		"task":      task,
		"updatedBy": updatedBy,
		"changes":   changes,
	})
}

func (d *Dispatcher) TaskDeleted(projectID, taskID, deletedBy string) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireTaskDeleted, map[string]any{
		"taskId":    taskID,
		"deletedBy": deletedBy,
	})
}

func (d *Dispatcher) TaskAssigned(assigneeIDs []string, task map[string]any, assignedBy, message string) contract.DispatchResult {
	return d.EmitToIdentities(assigneeIDs, event.WireTaskAssigned, map[string]any{
		"task":       task,
		"assignedBy": assignedBy,
		"message":    message,
	})
}

func (d *Dispatcher) TaskStatusChanged(projectID, taskID, oldStatus, newStatus, updatedBy string) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireTaskStatusChanged, map[string]any{
		"taskId":    taskID,
		"oldStatus": oldStatus,
		"newStatus": newStatus,
		"updatedBy": updatedBy,
	})
}

func (d *Dispatcher) TaskPriorityChanged(projectID, taskID, oldPriority, newPriority, updatedBy string) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireTaskPriorityChanged, map[string]any{
		"taskId":      taskID,
		"oldPriority": oldPriority,
		"newPriority": newPriority,
		"updatedBy":   updatedBy,
	})
}

func (d *Dispatcher) ProjectCreated(workspaceID string, project map[string]any, createdBy string) contract.DispatchResult {
	return d.EmitToChannel(WorkspaceChannel(workspaceID), event.WireProjectCreated, map[string]any{
		"project":   project,
		"createdBy": createdBy,
	})
}

func (d *Dispatcher) ProjectUpdated(workspaceID string, project map[string]any, updatedBy string) contract.DispatchResult {
	return d.EmitToChannel(WorkspaceChannel(workspaceID), event.WireProjectUpdated, map[string]any{
		"project":   project,
		"updatedBy": updatedBy,
	})
}

func (d *Dispatcher) ProjectDeleted(workspaceID, projectID, deletedBy string) contract.DispatchResult {
	return d.EmitToChannel(WorkspaceChannel(workspaceID), event.WireProjectDeleted, map[string]any{
		"projectId": projectID,
		"deletedBy": deletedBy,
	})
}

func (d *Dispatcher) ProjectMemberAdded(projectID, memberID, addedBy string) contract.DispatchResult {
	return d.EmitToChannel(ProjectChannel(projectID), event.WireProjectMemberAdded, map[string]any{
		"projectId": projectID,
		"memberId":  memberID,
		"addedBy":   addedBy,
	})
}

func (d *Dispatcher) WorkspaceCreated(createdBy string, workspace map[string]any) contract.DispatchResult {
	return d.EmitToIdentities([]string{createdBy}, event.WireWorkspaceCreated, map[string]any{
		"workspace": workspace,
		"createdBy": createdBy,
	})
}

func (d *Dispatcher) WorkspaceUpdated(workspaceID string, workspace map[string]any, updatedBy string) contract.DispatchResult {
	return d.EmitToChannel(WorkspaceChannel(workspaceID), event.WireWorkspaceUpdated, map[string]any{
		"workspace": workspace,
		"updatedBy": updatedBy,
	})
}

func (d *Dispatcher) WorkspaceDeleted(workspaceID, deletedBy string) contract.DispatchResult {
	return d.EmitToChannel(WorkspaceChannel(workspaceID), event.WireWorkspaceDeleted, map[string]any{
		"workspaceId": workspaceID,
		"deletedBy":   deletedBy,
	})
}

func (d *Dispatcher) CommentAdded(taskID string, comment map[string]any, author string) contract.DispatchResult {
	return d.EmitToChannel(TaskChannel(taskID), event.WireCommentAdded, map[string]any{
		"comment": comment,
		"taskId":  taskID,
		"actor":   author,
	})
}

func (d *Dispatcher) CommentUpdated(taskID string, comment map[string]any, author string) contract.DispatchResult {
	return d.EmitToChannel(TaskChannel(taskID), event.WireCommentUpdated, map[string]any{
		"comment": comment,
		"taskId":  taskID,
		"actor":   author,
	})
}

func (d *Dispatcher) CommentDeleted(taskID, commentID, author string) contract.DispatchResult {
	return d.EmitToChannel(TaskChannel(taskID), event.WireCommentDeleted, map[string]any{
		"commentId": commentID,
		"taskId":    taskID,
		"actor":     author,
	})
}

func (d *Dispatcher) NotificationNew(userID string, notification map[string]any) contract.DispatchResult {
	return d.EmitToIdentities([]string{userID}, event.WireNotificationNew, map[string]any{
		"notification": notification,
	})
}

func (d *Dispatcher) NotificationRead(userID, notificationID string) contract.DispatchResult {
	return d.EmitToIdentities([]string{userID}, event.WireNotificationRead, map[string]any{
		"notificationId": notificationID,
	})
}

// Typing indicators go to everyone watching the task except the typist's
// own devices.
func (d *Dispatcher) UserTyping(taskID, userID string) contract.DispatchResult {
	return d.BroadcastExcluding(TaskChannel(taskID), userID, event.WireUserTyping, map[string]any{
		"userId": userID,
		"taskId": taskID,
	})
}

func (d *Dispatcher) UserStoppedTyping(taskID, userID string) contract.DispatchResult {
	return d.BroadcastExcluding(TaskChannel(taskID), userID, event.WireUserStoppedTyping, map[string]any{
		"userId": userID,
		"taskId": taskID,
	})
}

func (d *Dispatcher) UserOnline(userID string) contract.DispatchResult {
	return d.EmitToAll(event.WireUserOnline, map[string]any{"userId": userID})
}

func (d *Dispatcher) UserOffline(userID string) contract.DispatchResult {
	return d.EmitToAll(event.WireUserOffline, map[string]any{"userId": userID})
}
