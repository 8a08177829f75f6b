package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// WorkspaceNotifier is the dispatcher capability the workspace module needs.
type WorkspaceNotifier interface {
	WorkspaceCreated(createdBy string, workspace map[string]any) contract.DispatchResult
	WorkspaceUpdated(workspaceID string, workspace map[string]any, updatedBy string) contract.DispatchResult
	WorkspaceDeleted(workspaceID, deletedBy string) contract.DispatchResult
}

type WorkspaceHandlers struct {
	log      *slog.Logger
	notifier WorkspaceNotifier
}

func RegisterWorkspaceHandlers(log *slog.Logger, bus contract.Bus, notifier WorkspaceNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &WorkspaceHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		WorkspaceCreated: h.onCreated,
		WorkspaceUpdated: h.onUpdated,
		WorkspaceDeleted: h.onDeleted,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// onCreated targets the creator's identity: a freshly created workspace has
// no channel members yet, but the creator's other devices must learn of it.
func (h *WorkspaceHandlers) onCreated(name string, payload any) {
	p, ok := decode[WorkspaceCreatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.WorkspaceCreated(p.CreatedBy, p.Workspace))
}

func (h *WorkspaceHandlers) onUpdated(name string, payload any) {
	p, ok := decode[WorkspaceUpdatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.WorkspaceUpdated(p.WorkspaceID, p.Workspace, p.UpdatedBy))
}

func (h *WorkspaceHandlers) onDeleted(name string, payload any) {
	p, ok := decode[WorkspaceDeletedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.WorkspaceDeleted(p.WorkspaceID, p.DeletedBy))
}
