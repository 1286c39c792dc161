package state

import (
	"sync/atomic"

	"artesapos/internal/models"
)

// AppState holds the latest snapshot of every backend collection plus a
// connectivity flag. It is constructed once at startup and passed
// explicitly to whoever needs it; there is no package-level instance.
// Collections are replaced wholesale by the bootstrap routines, never
// merged incrementally.
type AppState struct {
	MenuItems    []models.MenuItem
	Orders       []models.Order
	Transactions []models.Transaction
	Waiters      []models.Waiter
	CashClosures []models.CashClosure
	Config       models.ShopConfig

	online atomic.Bool
}

// New returns an empty state that assumes connectivity until the first
// probe says otherwise.
func New() *AppState {
	s := &AppState{Config: models.ShopConfig{}}
	s.online.Store(true)
	return s
}

func (s *AppState) Online() bool {
	return s.online.Load()
}

// SetOnline updates the connectivity flag and reports whether the value
// actually changed.
func (s *AppState) SetOnline(online bool) bool {
	return s.online.Swap(online) != online
}
