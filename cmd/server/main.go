package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/elhassanefek/projectify-sub000/auth"
	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/domain/event"
	"github.com/elhassanefek/projectify-sub000/infrastructure/ws"
	"github.com/elhassanefek/projectify-sub000/internal"
	"github.com/elhassanefek/projectify-sub000/runtime"
	"github.com/elhassanefek/projectify-sub000/runtime/workers"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer executes before the process
// exits and the entry point stays testable.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := internal.NewLogger(config.LogLevel)

	// 2. Realtime core: shared indexes, bus, dispatcher
	presence := runtime.NewPresence()
	channels := runtime.NewChannels()
	stats := runtime.NewStats()
	bus := runtime.NewBus(logger)
	dispatcher := runtime.NewDispatcher(logger, presence, channels, stats)

	// 3. Domain handler modules. A module registered without its required
	// capability aborts startup here rather than failing at first event.
	if err := registerHandlers(logger, bus, dispatcher); err != nil {
		return exitConfig, fmt.Errorf("handler wiring error: %w", err)
	}

	// 4. Connection gateway
	tokens := auth.NewTokenManager(config.JWTSecret, config.JWTIssuer, config.AuthTokenDuration)
	gateway := ws.NewGateway(logger, tokens, presence, channels, bus, stats, ws.Config{
		SendBufferSize: config.ConnectionBufferSize,
		WriteWait:      config.WriteTimeout,
		PongWait:       config.PongTimeout,
		MaxMessageSize: config.MaxMessageSize,
	})

	if config.DebugPort > 0 {
		internal.StartDebugServer(config.DebugPort, "/inspect", func() map[string]any {
			snapshot := stats.Snapshot()
			snapshot["online_identities"] = presence.OnlineCount()
			snapshot["active_channels"] = channels.ChannelCount()
			return snapshot
		})
		logger.Info("debug inspector available",
			"url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervised background workers
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(workers.NewTelemetry(logger, config.MetricInterval, presence, channels, stats))
	go sup.Run(ctx)

	// 7. HTTP listener hosting the websocket endpoint
	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", config.Port),
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting realtime server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for stop or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 9. Graceful shutdown: stop accepting, drain, stop workers.
	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	sup.Stop()
	logger.Info("server stopped cleanly")

	return exitOK, nil
}

func registerHandlers(log *slog.Logger, bus contract.Bus, dispatcher *runtime.Dispatcher) error {
	registrations := []func() error{
		func() error { return event.RegisterTaskHandlers(log, bus, dispatcher) },
		func() error { return event.RegisterProjectHandlers(log, bus, dispatcher) },
		func() error { return event.RegisterWorkspaceHandlers(log, bus, dispatcher) },
		func() error { return event.RegisterCommentHandlers(log, bus, dispatcher) },
		func() error { return event.RegisterNotificationHandlers(log, bus, dispatcher) },
		func() error { return event.RegisterPresenceHandlers(log, bus, dispatcher) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
