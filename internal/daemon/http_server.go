package daemon

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/compdocs/internal/history"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

// newHTTPServer builds the daemon's admin server: metrics, health, build
// history and the livereload stream.
func newHTTPServer(addr string, reg *prom.Registry, hub *LiveReloadHub, store *history.Store) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/livereload", hub)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "history disabled", http.StatusNotFound)
			return
		}
		records, err := store.Recent(r.Context(), 50)
		if err != nil {
			slog.Error("Failed to read build history", logfields.Error(err))
			http.Error(w, "history unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func shutdownHTTPServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", logfields.Error(err))
	}
}
