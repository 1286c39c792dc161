package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artesapos/internal/api"
	"artesapos/internal/bootstrap"
	"artesapos/internal/config"
	"artesapos/internal/events"
	"artesapos/internal/export"
	"artesapos/internal/logging"
	"artesapos/internal/metrics"
	"artesapos/internal/state"
	"artesapos/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	exportClosures := flag.Bool("export-closures", false, "write the cash closure report after loading and exit")
	flag.Parse()

	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, logger)
	}

	cache := initCache(ctx, cfg, logger)

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), api.RetryPolicy{
		MaxRetries: cfg.Backend.Retry.MaxRetries,
		Delay:      time.Duration(cfg.Backend.Retry.DelayMS) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.Backend.Retry.MaxDelayMS) * time.Millisecond,
	}, logger)
	client.UseCache(cache)
	if cfg.Backend.RateLimit.RPS > 0 {
		client.UseRateLimit(cfg.Backend.RateLimit.RPS, cfg.Backend.RateLimit.Burst)
	}

	st := state.New()
	bus := events.NewEventBus()
	subscribeEvents(bus, logger)

	if err := bootstrap.LoadInitialData(ctx, client, st, bus, logger); err != nil {
		return err
	}
	if err := bootstrap.InitializeDefaultData(ctx, client, st, bus, cfg.SeedMenu, logger); err != nil {
		return err
	}

	if *exportClosures {
		loc, err := cfg.Locale.Location()
		if err != nil {
			return err
		}
		path, err := export.CashClosures(cfg.Exports.Path, st.CashClosures, loc)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("closures", len(st.CashClosures)).Msg("cash closure report written")
		return nil
	}

	monitor := state.NewMonitor(cfg.Backend.BaseURL, st, bus, cache, cfg.Monitoring.ProbeInterval(), logger)
	go monitor.Start(ctx)

	logger.Info().Msg("POS data layer ready")
	<-ctx.Done()
	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "pos-main").Logger()
	return cfg, &logger, closer, nil
}

// initCache wires the snapshot store: redis with in-memory failover when
// configured, plain in-memory otherwise.
func initCache(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) store.Store {
	if !cfg.Cache.Enabled {
		return store.NewMemoryStore()
	}

	redisClient := store.NewRedisClient(cfg.Cache)
	if err := store.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}

	primary := store.NewRedisStore(redisClient, cfg.Cache.TTL())
	return store.NewFailoverStore(primary, store.NewMemoryStore(), logger)
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics endpoint error")
	}
}

func subscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	bus.Subscribe(events.EventConnectivityChanged, func(ev *events.Event) error {
		var payload events.ConnectivityPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		if !payload.Online {
			logger.Warn().Time("checked_at", payload.CheckedAt).Msg("backend unreachable, requests will fail until it recovers")
		}
		return nil
	})

	bus.Subscribe(events.EventMenuMigrated, func(ev *events.Event) error {
		var payload events.MigrationPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		if payload.MalformedImages > 0 {
			logger.Warn().Int("count", payload.MalformedImages).Msg("menu records had non-list image payloads discarded")
		}
		return nil
	})
}
