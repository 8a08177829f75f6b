package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// TaskNotifier is the dispatcher capability the task module needs.
type TaskNotifier interface {
	TaskCreated(projectID string, task map[string]any, createdBy string) contract.DispatchResult
	TaskUpdated(projectID string, task map[string]any, updatedBy string, changes map[string]any) contract.DispatchResult
	TaskDeleted(projectID, taskID, deletedBy string) contract.DispatchResult
	TaskAssigned(assigneeIDs []string, task map[string]any, assignedBy, message string) contract.DispatchResult
	TaskStatusChanged(projectID, taskID, oldStatus, newStatus, updatedBy string) contract.DispatchResult
	TaskPriorityChanged(projectID, taskID, oldPriority, newPriority, updatedBy string) contract.DispatchResult
}

// TaskHandlers translates task domain events into client notifications.
type TaskHandlers struct {
	log      *slog.Logger
	notifier TaskNotifier
}

// RegisterTaskHandlers wires the task module on the bus. Missing bus or
// notifier capability aborts startup rather than degrading at first event.
func RegisterTaskHandlers(log *slog.Logger, bus contract.Bus, notifier TaskNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &TaskHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		TaskCreated:         h.onCreated,
		TaskUpdated:         h.onUpdated,
		TaskDeleted:         h.onDeleted,
		TaskAssigned:        h.onAssigned,
		TaskStatusChanged:   h.onStatusChanged,
		TaskPriorityChanged: h.onPriorityChanged,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *TaskHandlers) onCreated(name string, payload any) {
	p, ok := decode[TaskCreatedPayload](h.log, name, payload)
	if !ok {
		return
	}

	logResult(h.log, h.notifier.TaskCreated(p.ProjectID, p.Task, p.CreatedBy))

	// The assignee gets a direct notification on top of the project
	// broadcast. The actor never receives task:assigned for its own action.
	if p.AssigneeID != "" && p.AssigneeID != p.CreatedBy {
		logResult(h.log, h.notifier.TaskAssigned([]string{p.AssigneeID}, p.Task, p.CreatedBy, p.Message))
	}
}

func (h *TaskHandlers) onUpdated(name string, payload any) {
	p, ok := decode[TaskUpdatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.TaskUpdated(p.ProjectID, p.Task, p.UpdatedBy, p.Changes))
}

func (h *TaskHandlers) onDeleted(name string, payload any) {
	p, ok := decode[TaskDeletedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.TaskDeleted(p.ProjectID, p.TaskID, p.DeletedBy))
}

func (h *TaskHandlers) onAssigned(name string, payload any) {
	p, ok := decode[TaskAssignedPayload](h.log, name, payload)
	if !ok {
		return
	}

	// The assigner's own devices are not notified of their own action.
	assignees := make([]string, 0, len(p.AssigneeIDs))
	for _, id := range p.AssigneeIDs {
		if id != p.AssignedBy {
			assignees = append(assignees, id)
		}
	}
	if len(assignees) == 0 {
		return
	}
	logResult(h.log, h.notifier.TaskAssigned(assignees, p.Task, p.AssignedBy, p.Message))
}

// onStatusChanged emits a dedicated status notification plus a generic
// task:updated carrying the old/new pair in its change set, so clients that
// only track updates stay consistent.
func (h *TaskHandlers) onStatusChanged(name string, payload any) {
	p, ok := decode[TaskStatusChangedPayload](h.log, name, payload)
	if !ok {
		return
	}

	logResult(h.log, h.notifier.TaskStatusChanged(p.ProjectID, p.TaskID, p.OldStatus, p.NewStatus, p.UpdatedBy))

	changes := map[string]any{
		"status": map[string]any{"old": p.OldStatus, "new": p.NewStatus},
	}
	logResult(h.log, h.notifier.TaskUpdated(p.ProjectID, p.Task, p.UpdatedBy, changes))
}

func (h *TaskHandlers) onPriorityChanged(name string, payload any) {
	p, ok := decode[TaskPriorityChangedPayload](h.log, name, payload)
	if !ok {
		return
	}

	logResult(h.log, h.notifier.TaskPriorityChanged(p.ProjectID, p.TaskID, p.OldPriority, p.NewPriority, p.UpdatedBy))

	changes := map[string]any{
		"priority": map[string]any{"old": p.OldPriority, "new": p.NewPriority},
	}
	logResult(h.log, h.notifier.TaskUpdated(p.ProjectID, p.Task, p.UpdatedBy, changes))
}
