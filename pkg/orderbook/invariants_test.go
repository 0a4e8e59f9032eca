package orderbook

// fatalT is the part of *testing.T and *rapid.T that checkBook needs.
type fatalT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// checkBook walks every level of both sides and fails when the book breaks
// one of its structural guarantees.
func checkBook(t fatalT, ob *Orderbook) {
	t.Helper()

	if bid, ok := ob.BestBid(); ok {
		if ask, ok := ob.BestAsk(); ok && bid >= ask {
			t.Fatalf("crossed book: best bid %d >= best ask %d", bid, ask)
		}
	}

	resting := 0
	for _, bs := range []*bookSide{ob.levels.bids, ob.levels.asks} {
		var prev *priceLevel
		bs.walk(func(l *priceLevel) bool {
			if l.empty() {
				t.Fatalf("%s level %d is empty but still indexed", bs.side, l.price)
			}
			if prev != nil {
				if bs.side == BUY && prev.price <= l.price {
					t.Fatalf("bids out of order: %d before %d", prev.price, l.price)
				}
				if bs.side == SELL && prev.price >= l.price {
					t.Fatalf("asks out of order: %d before %d", prev.price, l.price)
				}
			}
			prev = l

			count := 0
			var volume Quantity
			l.each(&ob.levels.arena, func(o *Order) bool {
				count++
				volume += o.RemainingQuantity()
				if o.RemainingQuantity() <= 0 {
					t.Fatalf("order %d rests with %d", o.ID(), o.RemainingQuantity())
				}
				if o.Type() == FAK {
					t.Fatalf("fill and kill order %d is resting", o.ID())
				}
				if o.Side() != bs.side || o.Price() != l.price {
					t.Fatalf("order %s sits in %s level %d", o, bs.side, l.price)
				}
				e, ok := ob.orders.get(o.ID())
				if !ok {
					t.Fatalf("order %d rests but is not indexed", o.ID())
				}
				if e.order != o || e.side != bs.side || e.price != l.price {
					t.Fatalf("index entry for %d does not match its level", o.ID())
				}
				if !ob.levels.arena.valid(e.pos) || ob.levels.arena.slots[e.pos.slot].order != o {
					t.Fatalf("index position for %d is stale", o.ID())
				}
				return true
			})
			if count != l.count {
				t.Fatalf("%s level %d counts %d orders, holds %d", bs.side, l.price, l.count, count)
			}
			if volume != l.volume {
				t.Fatalf("%s level %d volume %d, orders sum to %d", bs.side, l.price, l.volume, volume)
			}
			resting += count
			return true
		})
	}

	if resting != ob.Size() {
		t.Fatalf("levels hold %d orders, index holds %d", resting, ob.Size())
	}
	if live := ob.levels.arena.live(); live != resting {
		t.Fatalf("arena has %d live slots for %d orders", live, resting)
	}
}
