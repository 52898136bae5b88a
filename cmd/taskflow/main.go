// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskflow/internal/api"
	"taskflow/internal/auth"
	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/events"
	"taskflow/internal/logging"
	"taskflow/internal/session"
	"taskflow/internal/theme"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (*commands.App, func(), error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, err
		}
		log := logging.New(cfg.LogLevel, cfg.Debug)
		store, err := session.Open(cfg.StatePath())
		if err != nil {
			return nil, nil, err
		}
		client := api.New(cfg, store, log)
		app := &commands.App{
			Store:  store,
			Svc:    client,
			Auth:   auth.New(client, store),
			Theme:  theme.NewManager(store),
			Events: events.NewRegistry(),
			Log:    log,
		}
		cleanup := func() {
			_ = store.Close()
			_ = log.Sync()
		}
		return app, cleanup, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
