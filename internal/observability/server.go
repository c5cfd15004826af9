package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	logs "github.com/danmuck/smplog"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var startedAt = time.Now()

// NewRouter serves /health and /metrics.
func NewRouter(logger zerolog.Logger) http.Handler {
	RegisterMetrics()
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(RequestMetrics)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "scorelink",
		})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Serve runs the metrics listener until ctx is done.
func Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           NewRouter(*logs.Zerolog()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logs.Infof("observability.Serve listening addr=%s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
