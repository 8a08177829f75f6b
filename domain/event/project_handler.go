package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// ProjectNotifier is the dispatcher capability the project module needs.
type ProjectNotifier interface {
	ProjectCreated(workspaceID string, project map[string]any, createdBy string) contract.DispatchResult
	ProjectUpdated(workspaceID string, project map[string]any, updatedBy string) contract.DispatchResult
	ProjectDeleted(workspaceID, projectID, deletedBy string) contract.DispatchResult
	ProjectMemberAdded(projectID, memberID, addedBy string) contract.DispatchResult
	NotificationNew(userID string, notification map[string]any) contract.DispatchResult
}

// ProjectHandlers translates project domain events into client notifications.
type ProjectHandlers struct {
	log      *slog.Logger
	notifier ProjectNotifier
}

func RegisterProjectHandlers(log *slog.Logger, bus contract.Bus, notifier ProjectNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &ProjectHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		ProjectCreated:     h.onCreated,
		ProjectUpdated:     h.onUpdated,
		ProjectDeleted:     h.onDeleted,
		ProjectMemberAdded: h.onMemberAdded,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *ProjectHandlers) onCreated(name string, payload any) {
	p, ok := decode[ProjectCreatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.ProjectCreated(p.WorkspaceID, p.Project, p.CreatedBy))
}

func (h *ProjectHandlers) onUpdated(name string, payload any) {
	p, ok := decode[ProjectUpdatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.ProjectUpdated(p.WorkspaceID, p.Project, p.UpdatedBy))
}

func (h *ProjectHandlers) onDeleted(name string, payload any) {
	p, ok := decode[ProjectDeletedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.ProjectDeleted(p.WorkspaceID, p.ProjectID, p.DeletedBy))
}

// onMemberAdded announces the membership change on the project channel and,
// when the collaborator attached a notification document, delivers it to the
// new member's devices.
func (h *ProjectHandlers) onMemberAdded(name string, payload any) {
	p, ok := decode[ProjectMemberAddedPayload](h.log, name, payload)
	if !ok {
		return
	}

	logResult(h.log, h.notifier.ProjectMemberAdded(p.ProjectID, p.MemberID, p.AddedBy))

	if p.Notification != nil && p.MemberID != p.AddedBy {
		logResult(h.log, h.notifier.NotificationNew(p.MemberID, p.Notification))
	}
}
