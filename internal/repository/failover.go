package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverCache serves from the primary cache and trips to the fallback when
// the primary errors, retrying the primary after a minute.
type FailoverCache struct {
	primary   domain.Cache
	fallback  domain.Cache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverCache(primary, fallback domain.Cache, logger *zerolog.Logger) *FailoverCache {
	return &FailoverCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverCache) primaryUsable() bool {
	if !c.isDown.Load() {
		return true
	}
	// Retry the primary after a minute of downtime.
	if time.Since(time.Unix(c.lastCheck.Load(), 0)) > time.Minute {
		c.isDown.Store(false)
		return true
	}
	return false
}

func (c *FailoverCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary cache failed, falling back to memory")
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().Unix())
}

func (c *FailoverCache) GetItems(ctx context.Context, key string) ([]models.Item, bool, error) {
	if c.primaryUsable() {
		items, ok, err := c.primary.GetItems(ctx, key)
		if err == nil {
			return items, ok, nil
		}
		c.markDown(err)
	}
	return c.fallback.GetItems(ctx, key)
}

func (c *FailoverCache) SetItems(ctx context.Context, key string, items []models.Item) error {
	if c.primaryUsable() {
		if err := c.primary.SetItems(ctx, key, items); err == nil {
			return nil
		} else {
			c.markDown(err)
		}
	}
	return c.fallback.SetItems(ctx, key, items)
}

func (c *FailoverCache) Invalidate(ctx context.Context) error {
	// Always drop the fallback too, it may hold entries from a downtime window.
	fallbackErr := c.fallback.Invalidate(ctx)

	if c.primaryUsable() {
		if err := c.primary.Invalidate(ctx); err != nil {
			c.markDown(err)
			return fallbackErr
		}
	}
	return fallbackErr
}
