package cache

import (
	"context"
	"time"
)

// BytesCache is a minimal cache API storing raw upstream bodies with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) GetBytes(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) SetBytes(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Close() error                                                  { return nil }
