package bootstrap

import (
	"context"

	"artesapos/internal/api"
	"artesapos/internal/events"
	"artesapos/internal/models"
	"artesapos/internal/state"

	"github.com/rs/zerolog"
)

// LoadInitialData populates st with a fresh snapshot of every backend
// collection, fetched sequentially. Required collections fail fast: the
// first error propagates unmodified and aborts the load. Cash closures
// are optional and degrade to an empty list; the config singleton is the
// first element of its collection, or an empty record.
func LoadInitialData(ctx context.Context, client *api.Client, st *state.AppState, bus *events.EventBus, logger *zerolog.Logger) error {
	var menu []models.MenuItem
	if err := client.GetAll(ctx, api.TableMenuItems, &menu); err != nil {
		return err
	}
	st.MenuItems = menu

	var orders []models.Order
	if err := client.GetAll(ctx, api.TableOrders, &orders); err != nil {
		return err
	}
	st.Orders = orders

	var transactions []models.Transaction
	if err := client.GetAll(ctx, api.TableTransactions, &transactions); err != nil {
		return err
	}
	st.Transactions = transactions

	var waiters []models.Waiter
	if err := client.GetAll(ctx, api.TableWaiters, &waiters); err != nil {
		return err
	}
	st.Waiters = waiters

	closures, err := LoadCashClosures(ctx, client)
	if err != nil {
		logger.Warn().Err(err).Msg("cash closures unavailable, continuing with empty list")
		closures = []models.CashClosure{}
	}
	st.CashClosures = closures

	var configs []models.ShopConfig
	if err := client.GetAll(ctx, api.TableConfig, &configs); err != nil {
		return err
	}
	if len(configs) > 0 {
		st.Config = configs[0]
	} else {
		st.Config = models.ShopConfig{}
	}

	_ = bus.PublishJSON(events.EventInitialDataLoaded, events.SnapshotPayload{
		MenuItems:    len(st.MenuItems),
		Orders:       len(st.Orders),
		Transactions: len(st.Transactions),
		Waiters:      len(st.Waiters),
		CashClosures: len(st.CashClosures),
	})
	logger.Info().
		Int("menu_items", len(st.MenuItems)).
		Int("orders", len(st.Orders)).
		Int("transactions", len(st.Transactions)).
		Int("waiters", len(st.Waiters)).
		Int("cash_closures", len(st.CashClosures)).
		Msg("initial data loaded")

	return nil
}

// LoadCashClosures fetches the cash closures collection.
func LoadCashClosures(ctx context.Context, client *api.Client) ([]models.CashClosure, error) {
	var closures []models.CashClosure
	if err := client.GetAll(ctx, api.TableCashClosures, &closures); err != nil {
		return nil, err
	}
	return closures, nil
}
