package orderbook

import "fmt"

// match crosses the best bid against the best ask until the book is no
// longer crossed, then kills an unfilled fill-and-kill order left at the
// head of either side.
func (ob *Orderbook) match() []Trade {
	var trades []Trade

	for {
		bids := ob.levels.best(BUY)
		asks := ob.levels.best(SELL)
		if bids == nil || asks == nil {
			break
		}

		bidPrice, askPrice := bids.price, asks.price
		if bidPrice < askPrice {
			break
		}

		// a level that empties is pruned by removeOrder, so both loops end
		// as soon as one FIFO at this price pair runs dry
		for !bids.empty() && !asks.empty() {
			bid := bids.front(&ob.levels.arena)
			ask := asks.front(&ob.levels.arena)

			qty := min(bid.RemainingQuantity(), ask.RemainingQuantity())
			mustFill(bid, qty)
			mustFill(ask, qty)
			bids.filled(qty)
			asks.filled(qty)

			trades = append(trades, Trade{
				Bid: TradeInfo{OrderID: bid.ID(), Price: bidPrice, Quantity: qty},
				Ask: TradeInfo{OrderID: ask.ID(), Price: askPrice, Quantity: qty},
			})

			if bid.IsFilled() {
				ob.removeOrder(bid.ID())
			}
			if ask.IsFilled() {
				ob.removeOrder(ask.ID())
			}
		}
	}

	ob.killFillAndKill(BUY)
	ob.killFillAndKill(SELL)

	return trades
}

func (ob *Orderbook) killFillAndKill(side Side) {
	l := ob.levels.best(side)
	if l == nil {
		return
	}
	o := l.front(&ob.levels.arena)
	if o.Type() == FAK && !o.IsFilled() {
		ob.removeOrder(o.ID())
	}
}

func mustFill(o *Order, qty Quantity) {
	if err := o.Fill(qty); err != nil {
		panic(fmt.Errorf("orderbook: matching: %w", err))
	}
}
