package cache

import (
	"context"
	"errors"
	"time"
)

// Layered is a two-level cache (L1: in-process, L2: shared, usually Redis).
type Layered struct {
	mem    *TTLCache
	shared BytesCache
	memTTL time.Duration
}

// NewLayered puts an in-process TTLCache in front of shared. Entries promoted
// from shared live in memory for at most memTTL.
func NewLayered(shared BytesCache, memTTL time.Duration) *Layered {
	return &Layered{mem: NewTTLCache(), shared: shared, memTTL: memTTL}
}

func (c *Layered) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	// L1
	if b, ok, _ := c.mem.GetBytes(ctx, key); ok {
		return b, true, nil
	}

	// L2
	b, ok, err := c.shared.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.mem.SetBytes(ctx, key, b, c.memTTL)
	return b, true, nil
}

// SetBytes writes through: shared first, then memory.
func (c *Layered) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.shared.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	memTTL := c.memTTL
	if ttl > 0 && (memTTL <= 0 || ttl < memTTL) {
		memTTL = ttl
	}
	return c.mem.SetBytes(ctx, key, value, memTTL)
}

// Close closes both layers.
func (c *Layered) Close() error {
	return errors.Join(c.mem.Close(), c.shared.Close())
}
