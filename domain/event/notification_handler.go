package event

import (
	"log/slog"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// NotificationNotifier is the dispatcher capability the notification module needs.
type NotificationNotifier interface {
	NotificationNew(userID string, notification map[string]any) contract.DispatchResult
	NotificationRead(userID, notificationID string) contract.DispatchResult
}

type NotificationHandlers struct {
	log      *slog.Logger
	notifier NotificationNotifier
}

func RegisterNotificationHandlers(log *slog.Logger, bus contract.Bus, notifier NotificationNotifier) error {
	if bus == nil {
		return errors.ErrMissingBus
	}
	if notifier == nil {
		return errors.ErrMissingNotifier
	}

	h := &NotificationHandlers{log: log, notifier: notifier}
	subscriptions := map[string]contract.Handler{
		NotificationCreated: h.onCreated,
		NotificationRead:    h.onRead,
	}
	for name, fn := range subscriptions {
		if _, err := bus.Subscribe(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *NotificationHandlers) onCreated(name string, payload any) {
	p, ok := decode[NotificationCreatedPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.NotificationNew(p.UserID, p.Notification))
}

// onRead syncs the read state across the user's other devices.
func (h *NotificationHandlers) onRead(name string, payload any) {
	p, ok := decode[NotificationReadPayload](h.log, name, payload)
	if !ok {
		return
	}
	logResult(h.log, h.notifier.NotificationRead(p.UserID, p.NotificationID))
}
