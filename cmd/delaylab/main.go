package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("reading configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		slog.Error("delaylab failed", "err", err)
		cancel()
		os.Exit(1)
	}
}
