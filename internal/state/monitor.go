package state

import (
	"context"
	"net/http"
	"time"

	"artesapos/internal/events"
	"artesapos/internal/store"

	"github.com/rs/zerolog"
)

const lastConnectivityKey = "connectivity:last"

// Monitor probes the backend periodically and keeps the AppState
// connectivity flag current. It only flips the flag: in-flight requests
// are never aborted and nothing is queued for later replay.
type Monitor struct {
	baseURL    string
	httpClient *http.Client
	st         *AppState
	bus        *events.EventBus
	cache      store.Store
	interval   time.Duration
	logger     *zerolog.Logger
}

func NewMonitor(baseURL string, st *AppState, bus *events.EventBus, cache store.Store, interval time.Duration, logger *zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		st:         st,
		bus:        bus,
		cache:      cache,
		interval:   interval,
		logger:     logger,
	}
}

// Start restores the last known flag from the local store, then probes
// until ctx is done.
func (m *Monitor) Start(ctx context.Context) {
	m.restore(ctx)
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) restore(ctx context.Context) {
	if m.cache == nil {
		return
	}
	var last events.ConnectivityPayload
	found, err := m.cache.Get(ctx, lastConnectivityKey, &last)
	if err != nil || !found {
		return
	}
	m.st.SetOnline(last.Online)
}

func (m *Monitor) probe(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.baseURL, nil)
	if err != nil {
		return
	}

	online := false
	if resp, err := m.httpClient.Do(req); err == nil {
		resp.Body.Close()
		online = resp.StatusCode < http.StatusInternalServerError
	}

	payload := events.ConnectivityPayload{Online: online, CheckedAt: time.Now()}
	if m.st.SetOnline(online) {
		m.logger.Info().Bool("online", online).Msg("connectivity changed")
		_ = m.bus.PublishJSON(events.EventConnectivityChanged, payload)
	}
	if m.cache != nil {
		if err := m.cache.Set(ctx, lastConnectivityKey, payload); err != nil {
			m.logger.Debug().Err(err).Msg("connectivity cache write skipped")
		}
	}
}
