package engine

import (
	"context"

	"github.com/joripage/limit-orderbook/pkg/logging"
	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

// TradeSink receives the trades of every mutation that produced any.
// Sinks run outside the book lock in sequence order, under the same rule
// as trade callbacks: no mutations on the calling Engine.
type TradeSink interface {
	PublishTrades(ctx context.Context, symbol string, seq uint64, trades []orderbook.Trade) error
}

// DepthSink receives the book depth after every accepted mutation.
type DepthSink interface {
	StoreDepth(ctx context.Context, symbol string, seq uint64, depth orderbook.Snapshot) error
}

type Option func(*Engine)

func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithTradeSink(s TradeSink) Option {
	return func(e *Engine) {
		e.tradeSink = s
	}
}

// WithDepthSink publishes the best levels per side after each mutation;
// levels <= 0 publishes the whole book.
func WithDepthSink(s DepthSink, levels int) Option {
	return func(e *Engine) {
		e.depthSink = s
		e.depthLevels = levels
	}
}
