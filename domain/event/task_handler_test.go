package event_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/domain/event"
	"github.com/elhassanefek/projectify-sub000/errors"
	"github.com/elhassanefek/projectify-sub000/runtime"
)

type notifierCall struct {
	Method string
	Args   map[string]any
}

// fakeNotifier records every dispatcher call; implements all module
// capabilities.
type fakeNotifier struct {
	mu    sync.Mutex
	fail  bool
	calls []notifierCall
}

func (f *fakeNotifier) record(method string, args map[string]any) contract.DispatchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifierCall{Method: method, Args: args})
	if f.fail {
		return contract.DispatchResult{Success: false, Event: method, Err: errors.ErrSendBufferFull}
	}
	return contract.DispatchResult{Success: true, Event: method, Delivered: 1}
}

func (f *fakeNotifier) named(method string) []notifierCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifierCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeNotifier) TaskCreated(projectID string, task map[string]any, createdBy string) contract.DispatchResult {
	return f.record("TaskCreated", map[string]any{"projectID": projectID, "task": task, "createdBy": createdBy})
}

func (f *fakeNotifier) TaskUpdated(projectID string, task map[string]any, updatedBy string, changes map[string]any) contract.DispatchResult {
	return f.record("TaskUpdated", map[string]any{"projectID": projectID, "task": task, "updatedBy": updatedBy, "changes": changes})
}

func (f *fakeNotifier) TaskDeleted(projectID, taskID, deletedBy string) contract.DispatchResult {
	return f.record("TaskDeleted", map[string]any{"projectID": projectID, "taskID": taskID, "deletedBy": deletedBy})
}

func (f *fakeNotifier) TaskAssigned(assigneeIDs []string, task map[string]any, assignedBy, message string) contract.DispatchResult {
	return f.record("TaskAssigned", map[string]any{"assigneeIDs": assigneeIDs, "task": task, "assignedBy": assignedBy, "message": message})
}

func (f *fakeNotifier) TaskStatusChanged(projectID, taskID, oldStatus, newStatus, updatedBy string) contract.DispatchResult {
	return f.record("TaskStatusChanged", map[string]any{"projectID": projectID, "taskID": taskID, "oldStatus": oldStatus, "newStatus": newStatus, "updatedBy": updatedBy})
}

func (f *fakeNotifier) TaskPriorityChanged(projectID, taskID, oldPriority, newPriority, updatedBy string) contract.DispatchResult {
	return f.record("TaskPriorityChanged", map[string]any{"projectID": projectID, "taskID": taskID, "oldPriority": oldPriority, "newPriority": newPriority, "updatedBy": updatedBy})
}

func (f *fakeNotifier) ProjectCreated(workspaceID string, project map[string]any, createdBy string) contract.DispatchResult {
	return f.record("ProjectCreated", map[string]any{"workspaceID": workspaceID, "project": project, "createdBy": createdBy})
}

func (f *fakeNotifier) ProjectUpdated(workspaceID string, project map[string]any, updatedBy string) contract.DispatchResult {
	return f.record("ProjectUpdated", map[string]any{"workspaceID": workspaceID, "project": project, "updatedBy": updatedBy})
}

func (f *fakeNotifier) ProjectDeleted(workspaceID, projectID, deletedBy string) contract.DispatchResult {
	return f.record("ProjectDeleted", map[string]any{"workspaceID": workspaceID, "projectID": projectID, "deletedBy": deletedBy})
}

func (f *fakeNotifier) ProjectMemberAdded(projectID, memberID, addedBy string) contract.DispatchResult {
	return f.record("ProjectMemberAdded", map[string]any{"projectID": projectID, "memberID": memberID, "addedBy": addedBy})
}

func (f *fakeNotifier) WorkspaceCreated(createdBy string, workspace map[string]any) contract.DispatchResult {
	return f.record("WorkspaceCreated", map[string]any{"createdBy": createdBy, "workspace": workspace})
}

func (f *fakeNotifier) WorkspaceUpdated(workspaceID string, workspace map[string]any, updatedBy string) contract.DispatchResult {
	return f.record("WorkspaceUpdated", map[string]any{"workspaceID": workspaceID, "workspace": workspace, "updatedBy": updatedBy})
}

func (f *fakeNotifier) WorkspaceDeleted(workspaceID, deletedBy string) contract.DispatchResult {
	return f.record("WorkspaceDeleted", map[string]any{"workspaceID": workspaceID, "deletedBy": deletedBy})
}

func (f *fakeNotifier) CommentAdded(taskID string, comment map[string]any, author string) contract.DispatchResult {
	return f.record("CommentAdded", map[string]any{"taskID": taskID, "comment": comment, "author": author})
}

func (f *fakeNotifier) CommentUpdated(taskID string, comment map[string]any, author string) contract.DispatchResult {
	return f.record("CommentUpdated", map[string]any{"taskID": taskID, "comment": comment, "author": author})
}

func (f *fakeNotifier) CommentDeleted(taskID, commentID, author string) contract.DispatchResult {
	return f.record("CommentDeleted", map[string]any{"taskID": taskID, "commentID": commentID, "author": author})
}

func (f *fakeNotifier) NotificationNew(userID string, notification map[string]any) contract.DispatchResult {
	return f.record("NotificationNew", map[string]any{"userID": userID, "notification": notification})
}

func (f *fakeNotifier) NotificationRead(userID, notificationID string) contract.DispatchResult {
	return f.record("NotificationRead", map[string]any{"userID": userID, "notificationID": notificationID})
}

func (f *fakeNotifier) UserOnline(userID string) contract.DispatchResult {
	return f.record("UserOnline", map[string]any{"userID": userID})
}

func (f *fakeNotifier) UserOffline(userID string) contract.DispatchResult {
	return f.record("UserOffline", map[string]any{"userID": userID})
}

func (f *fakeNotifier) UserTyping(taskID, userID string) contract.DispatchResult {
	return f.record("UserTyping", map[string]any{"taskID": taskID, "userID": userID})
}

func (f *fakeNotifier) UserStoppedTyping(taskID, userID string) contract.DispatchResult {
	return f.record("UserStoppedTyping", map[string]any{"taskID": taskID, "userID": userID})
}

func newTaskFixture(t *testing.T) (contract.Bus, *fakeNotifier) {
	t.Helper()
	bus := runtime.NewBus(slog.Default())
	notifier := &fakeNotifier{}
	require.NoError(t, event.RegisterTaskHandlers(slog.Default(), bus, notifier))
	return bus, notifier
}

func TestRegisterTaskHandlers_FailsFastOnMissingWiring(t *testing.T) {
	req := require.New(t)

	err := event.RegisterTaskHandlers(slog.Default(), nil, &fakeNotifier{})
	req.ErrorIs(err, errors.ErrMissingBus)

	err = event.RegisterTaskHandlers(slog.Default(), runtime.NewBus(slog.Default()), nil)
	req.ErrorIs(err, errors.ErrMissingNotifier)
}

func TestTaskHandlers_CreatedWithAssigneeNotifiesBoth(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	// Given alice creates a task assigned to bob
	task := map[string]any{"id": "t1", "title": "write spec"}
	req.NoError(bus.Publish(event.TaskCreated, event.TaskCreatedPayload{
		ProjectID:  "p1",
		Task:       task,
		CreatedBy:  "alice",
		AssigneeID: "bob",
		Message:    "please review",
	}))

	// Then the project channel broadcast happens
	created := notifier.named("TaskCreated")
	req.Len(created, 1)
	req.Equal("p1", created[0].Args["projectID"])
	req.Equal("alice", created[0].Args["createdBy"])

	// And bob, not alice, gets the direct assignment notification
	assigned := notifier.named("TaskAssigned")
	req.Len(assigned, 1)
	req.Equal([]string{"bob"}, assigned[0].Args["assigneeIDs"])
	req.Equal("alice", assigned[0].Args["assignedBy"])
}

func TestTaskHandlers_SelfAssignedCreationSkipsAssignmentNotice(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	req.NoError(bus.Publish(event.TaskCreated, event.TaskCreatedPayload{
		ProjectID:  "p1",
		Task:       map[string]any{"id": "t1"},
		CreatedBy:  "alice",
		AssigneeID: "alice",
	}))

	req.Len(notifier.named("TaskCreated"), 1)
	req.Empty(notifier.named("TaskAssigned"))
}

func TestTaskHandlers_AssignedFiltersOutTheAssigner(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	req.NoError(bus.Publish(event.TaskAssigned, event.TaskAssignedPayload{
		Task:        map[string]any{"id": "t1"},
		AssigneeIDs: []string{"alice", "bob"},
		AssignedBy:  "alice",
	}))

	assigned := notifier.named("TaskAssigned")
	req.Len(assigned, 1)
	req.Equal([]string{"bob"}, assigned[0].Args["assigneeIDs"])
}

func TestTaskHandlers_StatusChangeEmitsDedicatedAndGenericUpdate(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	// Given a task moves from todo to done
	req.NoError(bus.Publish(event.TaskStatusChanged, event.TaskStatusChangedPayload{
		ProjectID: "p1",
		TaskID:    "t1",
		Task:      map[string]any{"id": "t1", "status": "done"},
		OldStatus: "todo",
		NewStatus: "done",
		UpdatedBy: "alice",
	}))

	// Then exactly one dedicated status notification fires
	status := notifier.named("TaskStatusChanged")
	req.Len(status, 1)
	req.Equal("todo", status[0].Args["oldStatus"])
	req.Equal("done", status[0].Args["newStatus"])

	// And a separate generic update carries the old/new pair in its changes
	updated := notifier.named("TaskUpdated")
	req.Len(updated, 1)
	changes := updated[0].Args["changes"].(map[string]any)
	req.Equal(map[string]any{"old": "todo", "new": "done"}, changes["status"])
}

func TestTaskHandlers_MissingRequiredFieldDropsEventSilently(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	// When a required field is absent, publish still succeeds for the caller
	req.NoError(bus.Publish(event.TaskCreated, event.TaskCreatedPayload{
		Task:      map[string]any{"id": "t1"},
		CreatedBy: "alice",
		// ProjectID missing
	}))

	// And no dispatch occurred
	req.Empty(notifier.calls)
}

func TestTaskHandlers_WrongPayloadTypeDropsEventSilently(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)

	req.NoError(bus.Publish(event.TaskCreated, "not a payload struct"))

	req.Empty(notifier.calls)
}

func TestTaskHandlers_DispatchFailureIsLoggedNotRetried(t *testing.T) {
	req := require.New(t)
	bus, notifier := newTaskFixture(t)
	notifier.fail = true

	req.NoError(bus.Publish(event.TaskDeleted, event.TaskDeletedPayload{
		ProjectID: "p1",
		TaskID:    "t1",
		DeletedBy: "alice",
	}))

	// Exactly one attempt, no retry
	req.Len(notifier.named("TaskDeleted"), 1)
}
