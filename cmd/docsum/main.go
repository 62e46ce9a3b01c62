package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"docsum/internal/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg, func(log *slog.Logger) app.API {
		return app.NewDeps(cfg, log, nil).Service
	})
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		}
		os.Exit(1)
	}
}
