package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// PresenceNotifier is the dispatcher capability the presence module needs.
type PresenceNotifier interface {
	UserOnline(userID string) contract.DispatchResult
	UserOffline(userID string) contract.DispatchResult
	UserTyping(taskID, userID string) contract.DispatchResult
	UserStoppedTyping(taskID, userID string) contract.DispatchResult
}

// PresenceHandlers reacts to gateway-published presence and typing events.
// Online/offline fire only on the first connect and last disconnect of an
// identity; the gateway owns that edge detection.
type PresenceHandlers struct {
	log      *slog.Logger
	notifier PresenceNotifier
}

func RegisterPresenceHandlers(log *slog.Logger, bus contract.Bus, notifier PresenceNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &PresenceHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		UserOnline:    h.onOnline,
		UserOffline:   h.onOffline,
		TypingStarted: h.onTypingStarted,
		TypingStopped: h.onTypingStopped,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *PresenceHandlers) onOnline(name string, payload any) {
	p, ok := decode[PresencePayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.UserOnline(p.UserID))
}

func (h *PresenceHandlers) onOffline(name string, payload any) {
	p, ok := decode[PresencePayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.UserOffline(p.UserID))
}

func (h *PresenceHandlers) onTypingStarted(name string, payload any) {
	p, ok := decode[TypingPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.UserTyping(p.TaskID, p.UserID))
}

func (h *PresenceHandlers) onTypingStopped(name string, payload any) {
	p, ok := decode[TypingPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.UserStoppedTyping(p.TaskID, p.UserID))
}
