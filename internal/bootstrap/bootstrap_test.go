package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"artesapos/internal/api"
	"artesapos/internal/events"
	"artesapos/internal/models"
	"artesapos/internal/state"

	"github.com/rs/zerolog"
)

// fakeBackend serves collections the way the real REST service does:
// GET /{table} returns the collection, POST /{table} replaces it.
type fakeBackend struct {
	mu          sync.Mutex
	collections map[string]string
	fail        map[string]bool
	posts       map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		collections: make(map[string]string),
		fail:        make(map[string]bool),
		posts:       make(map[string]int),
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/")
	if b.fail[table] {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		body, ok := b.collections[table]
		if !ok {
			body = "[]"
		}
		_, _ = w.Write([]byte(body))
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		b.collections[table] = string(body)
		b.posts[table]++
		_, _ = w.Write(body)
	default:
		http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
	}
}

func (b *fakeBackend) postCount(table string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.posts[table]
}

func (b *fakeBackend) collection(table string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.collections[table]
}

func (b *fakeBackend) setFail(table string, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[table] = fail
}

func newTestSetup(t *testing.T) (*fakeBackend, *api.Client, *state.AppState, *events.EventBus, *zerolog.Logger) {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	client := api.NewClient(srv.URL, 5*time.Second, api.RetryPolicy{MaxRetries: 2, Delay: time.Millisecond}, &logger)
	return backend, client, state.New(), events.NewEventBus(), &logger
}

func TestLoadInitialDataOptionalCashClosures(t *testing.T) {
	backend, client, st, bus, logger := newTestSetup(t)
	backend.collections["menu_items"] = `[{"id":"m1","name":"Billetera","price":45000,"category":"Cuero","cost":0,"images":[]}]`
	backend.collections["waiters"] = `[{"id":"w1","name":"Ana","active":true}]`
	backend.collections["config"] = `[{"shop_name":"Artesa"}]`
	backend.setFail("cash_closures", true)

	if err := LoadInitialData(context.Background(), client, st, bus, logger); err != nil {
		t.Fatalf("expected optional cash closures failure to degrade, got %v", err)
	}

	if len(st.MenuItems) != 1 || st.MenuItems[0].ID != "m1" {
		t.Fatalf("unexpected menu snapshot: %+v", st.MenuItems)
	}
	if st.CashClosures == nil || len(st.CashClosures) != 0 {
		t.Fatalf("expected empty cash closures list, got %+v", st.CashClosures)
	}
	if st.Config["shop_name"] != "Artesa" {
		t.Fatalf("expected config singleton, got %+v", st.Config)
	}
}

func TestLoadInitialDataRequiredCollectionFails(t *testing.T) {
	backend, client, st, bus, logger := newTestSetup(t)
	backend.setFail("menu_items", true)

	err := LoadInitialData(context.Background(), client, st, bus, logger)

	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError for required collection, got %v", err)
	}
	if fetchErr.Table != "menu_items" {
		t.Fatalf("expected menu_items failure, got %s", fetchErr.Table)
	}
}

func TestLoadInitialDataEmptyConfig(t *testing.T) {
	_, client, st, bus, logger := newTestSetup(t)

	if err := LoadInitialData(context.Background(), client, st, bus, logger); err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Config == nil || len(st.Config) != 0 {
		t.Fatalf("expected empty config record, got %+v", st.Config)
	}
}

func TestInitializeDefaultDataSeedsEmptyCollections(t *testing.T) {
	backend, client, st, bus, logger := newTestSetup(t)
	ctx := context.Background()

	if err := InitializeDefaultData(ctx, client, st, bus, nil, logger); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if backend.postCount("menu_items") != 1 {
		t.Fatalf("expected one menu seed write, got %d", backend.postCount("menu_items"))
	}
	if backend.postCount("waiters") != 1 {
		t.Fatalf("expected one waiter seed write, got %d", backend.postCount("waiters"))
	}
	if len(st.MenuItems) == 0 || len(st.Waiters) != 2 {
		t.Fatalf("expected seeded state, got %d items / %d waiters", len(st.MenuItems), len(st.Waiters))
	}

	// Second run sees the seeded state and writes nothing.
	if err := InitializeDefaultData(ctx, client, st, bus, nil, logger); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if backend.postCount("menu_items") != 1 || backend.postCount("waiters") != 1 {
		t.Fatalf("expected no additional writes, got %d/%d",
			backend.postCount("menu_items"), backend.postCount("waiters"))
	}
}

func TestInitializeDefaultDataSeedFromConfig(t *testing.T) {
	backend, client, st, bus, logger := newTestSetup(t)
	seed := []models.MenuItem{{ID: "cfg1", Name: "Llavero", Price: 8000, Category: "Cuero", Cost: costOf(2000), Images: models.StringList{Values: []string{}}, Available: true}}

	if err := InitializeDefaultData(context.Background(), client, st, bus, seed, logger); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	var posted []models.MenuItem
	if err := json.Unmarshal([]byte(backend.collection("menu_items")), &posted); err != nil {
		t.Fatalf("decode posted seed: %v", err)
	}
	if len(posted) != 1 || posted[0].ID != "cfg1" {
		t.Fatalf("expected config seed persisted, got %+v", posted)
	}
}

func TestInitializeDefaultDataMigratesLegacyRecords(t *testing.T) {
	backend, client, st, bus, logger := newTestSetup(t)
	ctx := context.Background()

	backend.collections["menu_items"] = `[
		{"id":"m1","name":"Cinturón","price":35000,"category":"Cuero Artesanal","image":"img/cinturon.jpg"},
		{"id":"m2","name":"Bolso","price":60000,"category":"Bolsos de Trapillo","cost":20000,"images":["img/bolso.jpg"]},
		{"id":"m3","name":"Pulsera","price":12000,"category":"Bisutería","cost":4000,"images":{"bad":"shape"}}
	]`
	backend.collections["waiters"] = `[{"id":"w1","name":"Ana","active":true}]`

	if err := LoadInitialData(ctx, client, st, bus, logger); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := InitializeDefaultData(ctx, client, st, bus, nil, logger); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if backend.postCount("menu_items") != 1 {
		t.Fatalf("expected one migration write, got %d", backend.postCount("menu_items"))
	}
	if backend.postCount("waiters") != 0 {
		t.Fatalf("expected no waiter seed for populated collection")
	}

	var migrated []models.MenuItem
	if err := json.Unmarshal([]byte(backend.collection("menu_items")), &migrated); err != nil {
		t.Fatalf("decode migrated collection: %v", err)
	}

	if migrated[0].Category != "Cuero" {
		t.Fatalf("expected category rename, got %q", migrated[0].Category)
	}
	if migrated[0].Image != "" || len(migrated[0].Images.Values) != 1 || migrated[0].Images.Values[0] != "img/cinturon.jpg" {
		t.Fatalf("expected legacy image folded into list, got %+v", migrated[0])
	}
	if migrated[0].Cost == nil || *migrated[0].Cost != 0 {
		t.Fatalf("expected cost backfilled to 0, got %v", migrated[0].Cost)
	}
	if migrated[1].Category != models.CategoryCrochet {
		t.Fatalf("expected trapillo rename, got %q", migrated[1].Category)
	}
	if len(migrated[2].Images.Values) != 0 {
		t.Fatalf("expected malformed images reset to empty list, got %+v", migrated[2].Images)
	}

	// The persisted collection is canonical now: a fresh load plus a
	// second initialization writes nothing.
	st2 := state.New()
	if err := LoadInitialData(ctx, client, st2, bus, logger); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := InitializeDefaultData(ctx, client, st2, bus, nil, logger); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if backend.postCount("menu_items") != 1 {
		t.Fatalf("expected migration to be idempotent, got %d writes", backend.postCount("menu_items"))
	}
}

func TestLoadCashClosuresPassthrough(t *testing.T) {
	backend, client, _, _, _ := newTestSetup(t)
	backend.collections["cash_closures"] = `[{"id":"c1","date":"2024-03-01","total":250000}]`

	closures, err := LoadCashClosures(context.Background(), client)
	if err != nil {
		t.Fatalf("load cash closures: %v", err)
	}
	if len(closures) != 1 || closures[0].ID != "c1" || closures[0].Total != 250000 {
		t.Fatalf("unexpected closures: %+v", closures)
	}
}
