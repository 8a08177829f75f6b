package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingWorker struct {
	runs       atomic.Int32
	panicUntil int32
}

// Run panics for the first panicUntil passes, then blocks until cancelled.
func (w *countingWorker) Run(ctx context.Context) error {
	run := w.runs.Add(1)
	if run <= w.panicUntil {
		panic("worker blew up")
	}
	<-ctx.Done()
	return nil
}

func TestSupervisor_RestartsPanickingWorker(t *testing.T) {
	req := require.New(t)
	supervisor := NewSupervisor(slog.Default(), time.Millisecond)
	worker := &countingWorker{panicUntil: 2}
	supervisor.Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	// Two crashes, then the third pass runs until Stop
	req.Eventually(func() bool { return worker.runs.Load() == 3 },
		time.Second, 5*time.Millisecond)

	supervisor.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not shut down")
	}
	req.Equal(int32(3), worker.runs.Load())
}

func TestSupervisor_CleanReturnIsNotRestarted(t *testing.T) {
	req := require.New(t)
	supervisor := NewSupervisor(slog.Default(), time.Millisecond)

	var runs atomic.Int32
	supervisor.Add(workerFunc(func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not finish after clean worker return")
	}
	req.Equal(int32(1), runs.Load())
}

func TestSupervisor_ParentContextCancellationStopsEveryone(t *testing.T) {
	supervisor := NewSupervisor(slog.Default(), time.Millisecond)
	supervisor.Add(&countingWorker{}, &countingWorker{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor ignored parent cancellation")
	}
}

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error { return f(ctx) }
