package orderbook

// LevelInfo is the aggregate resting quantity at one price.
type LevelInfo struct {
	Price    Price
	Quantity Quantity
	Orders   int
}

// Snapshot holds both sides best price first. It shares nothing with the
// book it was taken from.
type Snapshot struct {
	Bids []LevelInfo
	Asks []LevelInfo
}

func (ob *Orderbook) Snapshot() Snapshot {
	return Snapshot{
		Bids: depth(ob.levels.bids, 0),
		Asks: depth(ob.levels.asks, 0),
	}
}

// Depth is Snapshot limited to the best n levels per side; n <= 0 means all.
func (ob *Orderbook) Depth(n int) Snapshot {
	return Snapshot{
		Bids: depth(ob.levels.bids, n),
		Asks: depth(ob.levels.asks, n),
	}
}

func depth(s *bookSide, n int) []LevelInfo {
	size := s.levels.Size()
	if n > 0 && n < size {
		size = n
	}
	out := make([]LevelInfo, 0, size)
	s.walk(func(l *priceLevel) bool {
		out = append(out, LevelInfo{
			Price:    l.price,
			Quantity: l.volume,
			Orders:   l.count,
		})
		return len(out) < size
	})
	return out
}

func (ob *Orderbook) BestBid() (Price, bool) {
	return bestPrice(ob.levels.bids)
}

func (ob *Orderbook) BestAsk() (Price, bool) {
	return bestPrice(ob.levels.asks)
}

func bestPrice(s *bookSide) (Price, bool) {
	l := s.best()
	if l == nil {
		return 0, false
	}
	return l.price, true
}

// Lookup returns a copy of the resting order with the given id.
func (ob *Orderbook) Lookup(id OrderID) (OrderInfo, bool) {
	e, ok := ob.orders.get(id)
	if !ok {
		return OrderInfo{}, false
	}
	return e.order.info(), true
}
