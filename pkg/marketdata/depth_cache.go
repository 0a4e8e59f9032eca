package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

var ErrNoDepth = errors.New("no depth cached for symbol")

// depthStore is the part of redis.Cmdable the cache uses.
type depthStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// DepthCache keeps the latest depth of each symbol under prefix+symbol.
type DepthCache struct {
	store  depthStore
	prefix string
	ttl    time.Duration
	scale  int32
	now    func() time.Time
}

func NewDepthCache(store depthStore, prefix string, ttl time.Duration, scale int32) *DepthCache {
	return &DepthCache{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		scale:  scale,
		now:    time.Now,
	}
}

func (c *DepthCache) key(symbol string) string {
	return c.prefix + symbol
}

func (c *DepthCache) StoreDepth(ctx context.Context, symbol string, seq uint64, depth orderbook.Snapshot) error {
	b, err := json.Marshal(NewDepthEvent(symbol, seq, c.scale, depth, c.now()))
	if err != nil {
		return fmt.Errorf("encode depth: %w", err)
	}
	if err := c.store.Set(ctx, c.key(symbol), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("store depth %s: %w", symbol, err)
	}
	return nil
}

// Depth reads back the last stored depth of symbol.
func (c *DepthCache) Depth(ctx context.Context, symbol string) (DepthEvent, error) {
	var ev DepthEvent
	b, err := c.store.Get(ctx, c.key(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ev, ErrNoDepth
	}
	if err != nil {
		return ev, fmt.Errorf("load depth %s: %w", symbol, err)
	}
	if err := json.Unmarshal(b, &ev); err != nil {
		return ev, fmt.Errorf("decode depth %s: %w", symbol, err)
	}
	return ev, nil
}
