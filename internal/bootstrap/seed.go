package bootstrap

import (
	"context"

	"artesapos/internal/api"
	"artesapos/internal/events"
	"artesapos/internal/format"
	"artesapos/internal/models"
	"artesapos/internal/state"

	"github.com/rs/zerolog"
)

// DefaultWaiters returns the two records installed when the waiters
// collection is empty.
func DefaultWaiters() []models.Waiter {
	return []models.Waiter{
		{ID: format.NewID(), Name: "Marcela", Active: true},
		{ID: format.NewID(), Name: "Camilo", Active: true},
	}
}

// DefaultMenuItems returns the example records installed on first run,
// already in the canonical shape so the migration never touches them.
func DefaultMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          format.NewID(),
			Name:        "Billetera de cuero",
			Description: "Billetera artesanal en cuero curtido a mano",
			Cost:        costOf(18000),
			Price:       45000,
			Category:    "Cuero",
			Images:      models.StringList{Values: []string{"img/billetera-cuero.jpg"}},
			Available:   true,
		},
		{
			ID:          format.NewID(),
			Name:        "Bolso tejido",
			Description: "Bolso en trapillo reciclado, tejido a crochet",
			Cost:        costOf(22000),
			Price:       60000,
			Category:    models.CategoryCrochet,
			Images:      models.StringList{Values: []string{"img/bolso-tejido.jpg"}},
			Available:   true,
		},
		{
			ID:          format.NewID(),
			Name:        "Pulsera en macramé",
			Description: "Pulsera trenzada con piedras naturales",
			Cost:        costOf(4000),
			Price:       12000,
			Category:    "Bisutería",
			Images:      models.StringList{Values: []string{}},
			Available:   true,
		},
	}
}

func costOf(v int64) *int64 { return &v }

// InitializeDefaultData seeds and migrates backend collections. It is
// safe to call on every startup: an empty menu gets the seed records, a
// populated one gets a field-level migration that is persisted only when
// at least one record changed, and an empty waiters collection gets the
// two defaults. Calling it again on migrated data issues zero writes.
func InitializeDefaultData(ctx context.Context, client *api.Client, st *state.AppState, bus *events.EventBus, seedMenu []models.MenuItem, logger *zerolog.Logger) error {
	if len(st.MenuItems) == 0 {
		seed := seedMenu
		if len(seed) == 0 {
			seed = DefaultMenuItems()
		}
		if _, err := client.Save(ctx, api.TableMenuItems, seed); err != nil {
			return err
		}
		st.MenuItems = seed
		_ = bus.PublishJSON(events.EventDefaultsSeeded, events.SeedPayload{Collection: api.TableMenuItems, Count: len(seed)})
		logger.Info().Int("count", len(seed)).Msg("seeded default menu items")
	} else if err := migrateMenu(ctx, client, st, bus, logger); err != nil {
		return err
	}

	if len(st.Waiters) == 0 {
		waiters := DefaultWaiters()
		if _, err := client.Save(ctx, api.TableWaiters, waiters); err != nil {
			return err
		}
		st.Waiters = waiters
		_ = bus.PublishJSON(events.EventDefaultsSeeded, events.SeedPayload{Collection: api.TableWaiters, Count: len(waiters)})
		logger.Info().Int("count", len(waiters)).Msg("seeded default waiters")
	}

	return nil
}

func migrateMenu(ctx context.Context, client *api.Client, st *state.AppState, bus *events.EventBus, logger *zerolog.Logger) error {
	migrated := make([]models.MenuItem, 0, len(st.MenuItems))
	changed := 0
	malformed := 0

	for _, item := range st.MenuItems {
		if item.Images.Malformed {
			// The backend held something that is not an image list; the
			// value is discarded, which we report rather than hide.
			malformed++
			logger.Warn().Str("id", item.ID).Str("name", item.Name).Msg("non-list images payload discarded during migration")
		}
		m, ch := item.Migrate()
		if ch {
			changed++
		}
		migrated = append(migrated, m)
	}

	if changed == 0 {
		return nil
	}

	if _, err := client.Save(ctx, api.TableMenuItems, migrated); err != nil {
		return err
	}
	st.MenuItems = migrated

	_ = bus.PublishJSON(events.EventMenuMigrated, events.MigrationPayload{
		Scanned:         len(migrated),
		Changed:         changed,
		MalformedImages: malformed,
	})
	logger.Info().Int("scanned", len(migrated)).Int("changed", changed).Msg("menu migration persisted")
	return nil
}
