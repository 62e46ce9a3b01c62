package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"docsum/internal/app"
	"docsum/internal/httputil"
	"docsum/internal/rpc"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, deps); err != nil {
		deps.Log.Error("worker stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps app.Deps) error {
	deps.Log.Info("worker starting", "queue_url", deps.Config.QueueURL, "group", deps.Config.QueueGroup)

	nc, err := rpc.Connect(ctx, deps.Log, deps.Config.QueueURL, deps.Config.QueueConnectAttempts)
	if err != nil {
		return err
	}
	defer nc.Close()

	srv := rpc.NewServer(deps.Log, deps.Service, deps.Config.QueueGroup, httputil.RequestTimeout)
	g, ctx := errgroup.WithContext(ctx)

	// Run request/reply subscriptions
	g.Go(func() error {
		return srv.Serve(ctx, nc)
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(ctx, deps.Log, deps.Config.HealthPort, "worker")
	})

	return g.Wait()
}
