package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatsProvider feeds the inspector with a point-in-time view of the
// realtime core.
type StatsProvider func() map[string]any

// StartDebugServer exposes live presence/channel/dispatch state on a
// separate port. Development aid only; never reachable through the public
// listener.
func StartDebugServer(port int, endpoint string, stats StatsProvider) {
	mux := http.NewServeMux()

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		payload := map[string]any{}
		if stats != nil {
			payload = stats()
		}
		_ = json.NewEncoder(w).Encode(payload)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}
