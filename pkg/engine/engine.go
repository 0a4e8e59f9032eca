package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/joripage/limit-orderbook/pkg/logging"
	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

// Result is the outcome of an accepted mutation.
type Result struct {
	Seq    uint64
	Trades []orderbook.Trade
}

type TradeCallback func(seq uint64, trades []orderbook.Trade)

// Engine serializes access to the book of one symbol. The book lock only
// covers the in-memory mutation; trade callbacks and sinks run after it is
// released, one mutation at a time in sequence order.
type Engine struct {
	symbol string

	mu        sync.Mutex
	book      *orderbook.Orderbook
	seq       sequencer
	callbacks []TradeCallback

	// dispatched is the last seq whose callbacks and sinks have run
	turnMu     sync.Mutex
	turn       *sync.Cond
	dispatched uint64

	logger      *logging.Logger
	tradeSink   TradeSink
	depthSink   DepthSink
	depthLevels int
}

func New(symbol string, opts ...Option) *Engine {
	e := &Engine{
		symbol: symbol,
		book:   orderbook.New(),
		logger: logging.NewNop(),
	}
	e.turn = sync.NewCond(&e.turnMu)
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("symbol", symbol))
	return e
}

func (e *Engine) Symbol() string {
	return e.symbol
}

func (e *Engine) AddOrder(ctx context.Context, kind orderbook.OrderType, id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) (Result, error) {
	// the order belongs to the book once added, only read it under the lock
	var desc string
	res, err := e.apply(ctx, "add", func() ([]orderbook.Trade, error) {
		order := orderbook.NewOrder(kind, id, side, price, qty)
		trades, err := e.book.AddOrder(order)
		desc = order.String()
		return trades, err
	})
	if err != nil {
		e.logger.Debug(ctx, "order rejected", zap.String("order", desc), zap.Error(err))
		return Result{}, err
	}
	e.logger.Debug(ctx, "order accepted",
		zap.String("order", desc),
		zap.Uint64("seq", res.Seq),
		zap.Int("trades", len(res.Trades)))
	return res, nil
}

// CancelOrder removes a resting order. Cancelling an unknown id changes
// nothing and returns orderbook.ErrOrderNotFound.
func (e *Engine) CancelOrder(ctx context.Context, id orderbook.OrderID) error {
	res, err := e.apply(ctx, "cancel", func() ([]orderbook.Trade, error) {
		return nil, e.book.CancelOrder(id)
	})
	if err != nil {
		e.logger.Debug(ctx, "cancel rejected", zap.Int64("order_id", int64(id)), zap.Error(err))
		return err
	}
	e.logger.Debug(ctx, "order cancelled", zap.Int64("order_id", int64(id)), zap.Uint64("seq", res.Seq))
	return nil
}

// ModifyOrder replaces a resting order, keeping its type. The replacement
// loses time priority.
func (e *Engine) ModifyOrder(ctx context.Context, id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) (Result, error) {
	m := orderbook.OrderModify{ID: id, Side: side, Price: price, Quantity: qty}
	res, err := e.apply(ctx, "modify", func() ([]orderbook.Trade, error) {
		return e.book.ModifyOrder(m)
	})
	if err != nil {
		e.logger.Debug(ctx, "modify rejected", zap.Any("modify", m), zap.Error(err))
		return Result{}, err
	}
	e.logger.Debug(ctx, "order modified",
		zap.Int64("order_id", int64(id)),
		zap.Uint64("seq", res.Seq),
		zap.Int("trades", len(res.Trades)))
	return res, nil
}

func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Size()
}

func (e *Engine) Snapshot() orderbook.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot()
}

func (e *Engine) Depth(n int) orderbook.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Depth(n)
}

func (e *Engine) Lookup(id orderbook.OrderID) (orderbook.OrderInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Lookup(id)
}

// Seq is the sequence number of the last accepted mutation.
func (e *Engine) Seq() uint64 {
	return e.seq.Current()
}

// RegisterTradeCallback adds cb to the callbacks run after every mutation
// that traded. Callbacks run in sequence order, and the mutation that
// triggered them does not return until they are done. A callback must not
// add, cancel or modify orders on the same Engine: the nested mutation
// waits for the callback's own turn to finish and never gets one. Reads
// (Size, Snapshot, Lookup) are fine.
func (e *Engine) RegisterTradeCallback(cb TradeCallback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks[:len(e.callbacks):len(e.callbacks)], cb)
}

type committed struct {
	res       Result
	depth     orderbook.Snapshot
	callbacks []TradeCallback
}

func (e *Engine) apply(ctx context.Context, op string, fn func() ([]orderbook.Trade, error)) (Result, error) {
	c, err := e.commit(fn)
	if err != nil {
		return Result{}, err
	}

	e.waitTurn(c.res.Seq)
	defer e.endTurn(c.res.Seq)

	e.dispatch(ctx, op, c)
	return c.res, nil
}

// commit runs fn under the book lock and copies out everything dispatch
// needs, so nothing after it touches the book.
func (e *Engine) commit(fn func() ([]orderbook.Trade, error)) (committed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	trades, err := fn()
	if err != nil {
		return committed{}, err
	}

	c := committed{
		res:       Result{Seq: e.seq.Next(), Trades: trades},
		callbacks: e.callbacks,
	}
	if e.depthSink != nil {
		c.depth = e.book.Depth(e.depthLevels)
	}
	return c, nil
}

// waitTurn blocks until every mutation before seq has been dispatched.
func (e *Engine) waitTurn(seq uint64) {
	e.turnMu.Lock()
	defer e.turnMu.Unlock()
	for e.dispatched+1 != seq {
		e.turn.Wait()
	}
}

func (e *Engine) endTurn(seq uint64) {
	e.turnMu.Lock()
	defer e.turnMu.Unlock()
	e.dispatched = seq
	e.turn.Broadcast()
}

func (e *Engine) dispatch(ctx context.Context, op string, c committed) {
	if len(c.res.Trades) > 0 {
		for _, cb := range c.callbacks {
			cb(c.res.Seq, c.res.Trades)
		}
		if e.tradeSink != nil {
			if err := e.tradeSink.PublishTrades(ctx, e.symbol, c.res.Seq, c.res.Trades); err != nil {
				e.logger.Error(ctx, "publish trades failed",
					zap.String("op", op),
					zap.Uint64("seq", c.res.Seq),
					zap.Error(err))
			}
		}
	}

	if e.depthSink != nil {
		if err := e.depthSink.StoreDepth(ctx, e.symbol, c.res.Seq, c.depth); err != nil {
			e.logger.Error(ctx, "store depth failed",
				zap.String("op", op),
				zap.Uint64("seq", c.res.Seq),
				zap.Error(err))
		}
	}
}
