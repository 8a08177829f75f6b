package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/elhassanefek/projectify-sub000/runtime"
)

// Telemetry periodically logs a snapshot of the realtime core: live
// connections, online identities, active channels, and dispatch counters.
type Telemetry struct {
	log      *slog.Logger
	interval time.Duration
	presence *runtime.Presence
	channels *runtime.Channels
	stats    *runtime.Stats
}

func NewTelemetry(log *slog.Logger, interval time.Duration,
	presence *runtime.Presence, channels *runtime.Channels, stats *runtime.Stats) *Telemetry {
	return &Telemetry{log: log, interval: interval, presence: presence, channels: channels, stats: stats}
}

func (w *Telemetry) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snapshot := w.stats.Snapshot()
			snapshot["online_identities"] = w.presence.OnlineCount()
			snapshot["active_channels"] = w.channels.ChannelCount()

			args := make([]any, 0, len(snapshot)*2)
			for k, v := range snapshot {
				args = append(args, k, v)
			}
			w.log.Info("realtime stats", args...)
		}
	}
}
