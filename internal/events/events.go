package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventConnectivityChanged = "connectivity_changed"
	EventInitialDataLoaded   = "initial_data_loaded"
	EventDefaultsSeeded      = "defaults_seeded"
	EventMenuMigrated        = "menu_migrated"
)

// ConnectivityPayload reports a connectivity flag change.
type ConnectivityPayload struct {
	Online    bool      `json:"online"`
	CheckedAt time.Time `json:"checked_at"`
}

// SnapshotPayload summarizes the collection sizes after an initial load.
type SnapshotPayload struct {
	MenuItems    int `json:"menu_items"`
	Orders       int `json:"orders"`
	Transactions int `json:"transactions"`
	Waiters      int `json:"waiters"`
	CashClosures int `json:"cash_closures"`
}

// SeedPayload describes a default-record installation.
type SeedPayload struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

// MigrationPayload describes a menu migration pass.
type MigrationPayload struct {
	Scanned         int `json:"scanned"`
	Changed         int `json:"changed"`
	MalformedImages int `json:"malformed_images"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
