//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Conn is one live transport session, owned by the gateway.
// The identity is set once at handshake time and never changes afterwards.
type Conn interface {
	ID() uuid.UUID
	Identity() string
	Send(event string, data map[string]any) error
}

// Handler consumes a published domain event.
// Handlers must be short and non-blocking; publication is synchronous.
type Handler func(name string, payload any)

// Bus is the in-process domain event bus decoupling business mutations
// from real-time delivery.
type Bus interface {
	Publish(name string, payload any) error
	Subscribe(name string, handler Handler) (func(), error)
}

// DispatchResult reports the outcome of a fan-out without raising an error
// into the business flow that triggered it. Delivery is best-effort.
type DispatchResult struct {
	Success   bool
	Event     string
	Target    string
	Delivered int
	Dropped   int
	Err       error
}

// Dispatcher exposes the fan-out primitives over live connections.
type Dispatcher interface {
	EmitToIdentities(identities []string, event string, data map[string]any) DispatchResult
	EmitToChannel(channel string, event string, data map[string]any) DispatchResult
	BroadcastExcluding(channel string, excludedIdentity string, event string, data map[string]any) DispatchResult
	EmitToAll(event string, data map[string]any) DispatchResult
}
