package marketdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

// TradeEvent is one trade as published downstream.
type TradeEvent struct {
	EventID    string          `json:"event_id"`
	Symbol     string          `json:"symbol"`
	Seq        uint64          `json:"seq"`
	Index      int             `json:"index"`
	BidOrderID int64           `json:"bid_order_id"`
	AskOrderID int64           `json:"ask_order_id"`
	BidPrice   decimal.Decimal `json:"bid_price"`
	AskPrice   decimal.Decimal `json:"ask_price"`
	Quantity   int64           `json:"quantity"`
	Notional   decimal.Decimal `json:"notional"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewTradeEvents converts the trades of one mutation. Index is the
// position of the trade within the mutation; notional is taken at the ask.
func NewTradeEvents(symbol string, seq uint64, scale int32, trades []orderbook.Trade, now time.Time) []TradeEvent {
	out := make([]TradeEvent, 0, len(trades))
	for i, tr := range trades {
		ask := FormatPrice(tr.Ask.Price, scale)
		out = append(out, TradeEvent{
			EventID:    uuid.NewString(),
			Symbol:     symbol,
			Seq:        seq,
			Index:      i,
			BidOrderID: int64(tr.Bid.OrderID),
			AskOrderID: int64(tr.Ask.OrderID),
			BidPrice:   FormatPrice(tr.Bid.Price, scale),
			AskPrice:   ask,
			Quantity:   int64(tr.Quantity()),
			Notional:   ask.Mul(decimal.NewFromInt(int64(tr.Quantity()))),
			Timestamp:  now.UTC(),
		})
	}
	return out
}

type LevelEvent struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

// DepthEvent is the aggregated book after a mutation.
type DepthEvent struct {
	Symbol    string       `json:"symbol"`
	Seq       uint64       `json:"seq"`
	Bids      []LevelEvent `json:"bids"`
	Asks      []LevelEvent `json:"asks"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewDepthEvent(symbol string, seq uint64, scale int32, snap orderbook.Snapshot, now time.Time) DepthEvent {
	return DepthEvent{
		Symbol:    symbol,
		Seq:       seq,
		Bids:      levelEvents(snap.Bids, scale),
		Asks:      levelEvents(snap.Asks, scale),
		Timestamp: now.UTC(),
	}
}

func levelEvents(levels []orderbook.LevelInfo, scale int32) []LevelEvent {
	out := make([]LevelEvent, len(levels))
	for i, l := range levels {
		out[i] = LevelEvent{
			Price:    FormatPrice(l.Price, scale),
			Quantity: int64(l.Quantity),
			Orders:   l.Orders,
		}
	}
	return out
}
