package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"artesapos/internal/api"
	"artesapos/internal/bootstrap"
	"artesapos/internal/config"
	"artesapos/internal/events"
	"artesapos/internal/models"
	"artesapos/internal/state"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	configPath := flag.String("config", "configs/config.yaml", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), api.RetryPolicy{
		MaxRetries: cfg.Backend.Retry.MaxRetries,
		Delay:      time.Duration(cfg.Backend.Retry.DelayMS) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.Backend.Retry.MaxDelayMS) * time.Millisecond,
	}, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st := state.New()
	var menu []models.MenuItem
	if err = client.GetAll(ctx, api.TableMenuItems, &menu); err != nil {
		return fmt.Errorf("fetch menu: %w", err)
	}
	st.MenuItems = menu

	var waiters []models.Waiter
	if err = client.GetAll(ctx, api.TableWaiters, &waiters); err != nil {
		return fmt.Errorf("fetch waiters: %w", err)
	}
	st.Waiters = waiters

	seeded := 0
	migrated := 0
	bus := events.NewEventBus()
	bus.Subscribe(events.EventDefaultsSeeded, func(ev *events.Event) error {
		var payload events.SeedPayload
		if err := json.Unmarshal(ev.Payload, &payload); err == nil {
			seeded += payload.Count
		}
		return nil
	})
	bus.Subscribe(events.EventMenuMigrated, func(ev *events.Event) error {
		var payload events.MigrationPayload
		if err := json.Unmarshal(ev.Payload, &payload); err == nil {
			migrated += payload.Changed
		}
		return nil
	})

	if err = bootstrap.InitializeDefaultData(ctx, client, st, bus, cfg.SeedMenu, &logger); err != nil {
		return fmt.Errorf("initialize defaults: %w", err)
	}

	fmt.Printf("done: seeded=%d migrated=%d\n", seeded, migrated)
	return nil
}
