package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// bookSide is the ordered map of price levels for one side. The comparator
// puts the best price first: highest for bids, lowest for asks.
type bookSide struct {
	side   Side
	levels *rbt.Tree[Price, *priceLevel]
}

func newBookSide(side Side) *bookSide {
	comparator := func(a, b Price) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
	if side == BUY {
		comparator = func(a, b Price) int {
			if a > b {
				return -1
			} else if a < b {
				return 1
			}
			return 0
		}
	}

	return &bookSide{
		side:   side,
		levels: rbt.NewWith[Price, *priceLevel](comparator),
	}
}

func (s *bookSide) best() *priceLevel {
	if s.levels.Empty() {
		return nil
	}
	return s.levels.Left().Value
}

func (s *bookSide) level(price Price) (*priceLevel, bool) {
	return s.levels.Get(price)
}

func (s *bookSide) getOrCreate(price Price) *priceLevel {
	if l, ok := s.levels.Get(price); ok {
		return l
	}
	l := newPriceLevel(price)
	s.levels.Put(price, l)
	return l
}

func (s *bookSide) prune(l *priceLevel) {
	if l.empty() {
		s.levels.Remove(l.price)
	}
}

// walk visits levels best price first until fn returns false.
func (s *bookSide) walk(fn func(l *priceLevel) bool) {
	it := s.levels.Iterator()
	for it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}

// priceLevels is the price level index: both sides plus the arena their
// FIFOs live in.
type priceLevels struct {
	arena orderArena
	bids  *bookSide
	asks  *bookSide
}

func newPriceLevels() *priceLevels {
	return &priceLevels{
		bids: newBookSide(BUY),
		asks: newBookSide(SELL),
	}
}

func (p *priceLevels) side(side Side) *bookSide {
	if side == BUY {
		return p.bids
	}
	return p.asks
}

func (p *priceLevels) best(side Side) *priceLevel {
	return p.side(side).best()
}

// insert appends the order at the tail of its price level.
func (p *priceLevels) insert(side Side, price Price, o *Order) position {
	return p.side(side).getOrCreate(price).pushBack(&p.arena, o)
}

// remove unlinks the order at pos and drops the level once it is empty.
func (p *priceLevels) remove(side Side, price Price, pos position) {
	bs := p.side(side)
	l, ok := bs.level(price)
	if !ok {
		panic(errMissingLevel(side, price))
	}
	l.remove(&p.arena, pos)
	bs.prune(l)
}

// canMatch reports whether an order on side at price crosses the best
// opposite price.
func (p *priceLevels) canMatch(side Side, price Price) bool {
	if side == BUY {
		best := p.asks.best()
		return best != nil && price >= best.price
	}
	best := p.bids.best()
	return best != nil && price <= best.price
}
