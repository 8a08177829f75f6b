package event

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/errors"
)

var validate = validator.New()

// decode asserts the payload against the event's field contract.
// A malformed payload is logged with field-level detail and dropped:
// dispatch happens after the producing request already succeeded, so there
// is nobody left to surface the error to.
func decode[T any](log *slog.Logger, name string, payload any) (T, bool) {
	p, ok := payload.(T)
	if !ok {
		log.Error("dropping event: unexpected payload type",
			"event", name,
			"want", fmt.Sprintf("%T", p),
			"got", fmt.Sprintf("%T", payload),
			"error", errors.ErrInvalidPayload)
		return p, false
	}

	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				log.Error("dropping event: payload contract violated",
					"event", name,
					"field", fe.Field(),
					"rule", fe.Tag())
			}
		} else {
			log.Error("dropping event: payload validation failed", "event", name, "error", err)
		}
		return p, false
	}
	return p, true
}

// logResult records a dispatcher outcome. A transport failure is logged but
// never retried or re-published: notification delivery is best-effort, not
// transactional with the committed mutation.
func logResult(log *slog.Logger, res contract.DispatchResult) {
	if !res.Success {
		log.Error("dispatch failed",
			"event", res.Event,
			"target", res.Target,
			"delivered", res.Delivered,
			"dropped", res.Dropped,
			"error", res.Err)
		return
	}
	log.Debug("dispatched",
		"event", res.Event,
		"target", res.Target,
		"delivered", res.Delivered)
}
