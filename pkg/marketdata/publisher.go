package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

// producer is the part of kafkawrapper.Producer the publisher uses.
type producer interface {
	PublishJSON(ctx context.Context, topic string, key string, v any, headers map[string]string) error
}

// TradePublisher writes the trade events of each mutation as one JSON
// message keyed by symbol, so a symbol's trades stay on one partition in
// sequence order.
type TradePublisher struct {
	producer   producer
	topic      string
	scale      int32
	maxRetries uint64
	newBackOff func() backoff.BackOff
	now        func() time.Time
}

func NewTradePublisher(p producer, topic string, scale int32, maxRetries uint64) *TradePublisher {
	return &TradePublisher{
		producer:   p,
		topic:      topic,
		scale:      scale,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
		now: time.Now,
	}
}

func (p *TradePublisher) PublishTrades(ctx context.Context, symbol string, seq uint64, trades []orderbook.Trade) error {
	events := NewTradeEvents(symbol, seq, p.scale, trades, p.now())
	headers := map[string]string{
		"symbol": symbol,
		"seq":    strconv.FormatUint(seq, 10),
	}

	boff := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), p.maxRetries), ctx)
	err := backoff.Retry(func() error {
		return p.producer.PublishJSON(ctx, p.topic, symbol, events, headers)
	}, boff)
	if err != nil {
		return fmt.Errorf("publish trades seq %d: %w", seq, err)
	}
	return nil
}
