package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves from the primary store until it errors, then
// drops to the fallback and probes the primary again after a minute.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) Get(ctx context.Context, key string, out any) (bool, error) {
	if !s.isDown.Load() {
		found, err := s.primary.Get(ctx, key, out)
		if err == nil {
			return found, nil
		}
		s.markDown(err)
	}

	// Probe the primary again after a minute of downtime.
	if s.isDown.Load() && time.Since(s.lastCheck) > time.Minute {
		found, err := s.primary.Get(ctx, key, out)
		if err == nil {
			s.isDown.Store(false)
			return found, nil
		}
		s.lastCheck = time.Now()
	}

	return s.fallback.Get(ctx, key, out)
}

func (s *FailoverStore) Set(ctx context.Context, key string, value any) error {
	if !s.isDown.Load() {
		if err := s.primary.Set(ctx, key, value); err == nil {
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Set(ctx, key, value)
}

func (s *FailoverStore) Remove(ctx context.Context, key string) error {
	if !s.isDown.Load() {
		if err := s.primary.Remove(ctx, key); err == nil {
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Remove(ctx, key)
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck = time.Now()
}
