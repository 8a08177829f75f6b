package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// CommentNotifier is the dispatcher capability the comment module needs.
type CommentNotifier interface {
	CommentAdded(taskID string, comment map[string]any, author string) contract.DispatchResult
	CommentUpdated(taskID string, comment map[string]any, author string) contract.DispatchResult
	CommentDeleted(taskID, commentID, author string) contract.DispatchResult
}

type CommentHandlers struct {
	log      *slog.Logger
	notifier CommentNotifier
}

func RegisterCommentHandlers(log *slog.Logger, bus contract.Bus, notifier CommentNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &CommentHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		CommentAdded:   h.onAdded,
		CommentUpdated: h.onUpdated,
		CommentDeleted: h.onDeleted,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *CommentHandlers) onAdded(name string, payload any) {
	p, ok := decode[CommentAddedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.CommentAdded(p.TaskID, p.Comment, p.Author))
}

func (h *CommentHandlers) onUpdated(name string, payload any) {
	p, ok := decode[CommentUpdatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.CommentUpdated(p.TaskID, p.Comment, p.Author))
}

func (h *CommentHandlers) onDeleted(name string, payload any) {
	p, ok := decode[CommentDeletedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.CommentDeleted(p.TaskID, p.CommentID, p.Author))
}
