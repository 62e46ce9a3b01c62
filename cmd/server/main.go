package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"docsum/internal/app"
	"docsum/internal/httputil"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps.Log, deps.Service),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httputil.Serve(ctx, deps.Log.With("service", "server"), srv); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(log *slog.Logger, api app.API) *chi.Mux {
	r := httputil.NewRouter(log)

	r.Post("/api/summarize", handle(log, api.Summarize))
	r.Post("/api/chat", handle(log, api.Chat))
	r.Post("/api/connection/test", handle(log, api.TestConnection))
	r.Post("/api/analyze", handle(log, api.Analyze))
	r.Post("/api/extract", handle(log, api.ExtractText))
	r.Get("/healthz", httputil.HealthHandler(log))

	return r
}

// handle decodes Req, runs op and always answers 200 with its envelope.
// Only an undecodable body is rejected with 400.
func handle[Req, Resp any](log *slog.Logger, op func(context.Context, Req) Resp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, op(r.Context(), req))
	}
}
