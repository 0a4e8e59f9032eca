package orderbook

import (
	"testing"

	"pgregory.net/rapid"
)

// TestBookProperties drives the book with random adds, cancels and
// modifies and checks the structural guarantees after every step, plus
// quantity conservation: every unit submitted is either resting, traded
// on both sides, cancelled or killed.
func TestBookProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob := New()
		nextID := OrderID(1)
		var ids []OrderID
		resting := func() Quantity {
			var q Quantity
			for _, e := range ob.orders.entries {
				q += e.order.RemainingQuantity()
			}
			return q
		}

		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 9).Draw(t, "op") {
			case 0, 1:
				if len(ids) == 0 {
					continue
				}
				id := rapid.SampledFrom(ids).Draw(t, "cancelID")
				_, wasResting := ob.Lookup(id)
				before := ob.Size()
				err := ob.CancelOrder(id)
				if wasResting && (err != nil || ob.Size() != before-1) {
					t.Fatalf("cancel of resting %d: err=%v size %d -> %d", id, err, before, ob.Size())
				}
				if !wasResting && err != ErrOrderNotFound {
					t.Fatalf("cancel of unknown %d: expected ErrOrderNotFound, got %v", id, err)
				}
			case 2:
				if len(ids) == 0 {
					continue
				}
				id := rapid.SampledFrom(ids).Draw(t, "modifyID")
				m := OrderModify{
					ID:       id,
					Side:     rapid.SampledFrom([]Side{BUY, SELL}).Draw(t, "modifySide"),
					Price:    Price(rapid.Int64Range(95, 105).Draw(t, "modifyPrice")),
					Quantity: Quantity(rapid.Int64Range(1, 50).Draw(t, "modifyQty")),
				}
				old, wasResting := ob.Lookup(id)
				before := resting()
				trades, err := ob.ModifyOrder(m)
				if !wasResting {
					if err != ErrOrderNotFound {
						t.Fatalf("modify of unknown %d: expected ErrOrderNotFound, got %v", id, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("modify %+v: %v", m, err)
				}
				checkConservation(t, before-old.Remaining+m.Quantity, resting(), trades)
			default:
				o := NewOrder(
					rapid.SampledFrom([]OrderType{GTC, GTC, GTC, FAK}).Draw(t, "type"),
					nextID,
					rapid.SampledFrom([]Side{BUY, SELL}).Draw(t, "side"),
					Price(rapid.Int64Range(95, 105).Draw(t, "price")),
					Quantity(rapid.Int64Range(1, 50).Draw(t, "qty")),
				)
				ids = append(ids, nextID)
				nextID++

				before := resting()
				crosses := ob.levels.canMatch(o.Side(), o.Price())
				trades, err := ob.AddOrder(o)
				if o.Type() == FAK && !crosses {
					if err != ErrNoImmediateMatch {
						t.Fatalf("FAK %s without a match: expected ErrNoImmediateMatch, got %v", o, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("add %s: %v", o, err)
				}
				if o.Type() == FAK && len(trades) == 0 {
					t.Fatalf("accepted FAK %s produced no trades", o)
				}
				if o.Type() == FAK {
					if _, ok := ob.Lookup(o.ID()); ok {
						t.Fatalf("FAK %s left resting", o)
					}
					// the killed remainder leaves the book without trading
					before -= o.RemainingQuantity()
				}
				checkConservation(t, before+o.InitialQuantity(), resting(), trades)
			}
			checkBook(t, ob)
		}
	})
}

// checkConservation compares what was on the book plus what came in with
// what is left plus twice what traded.
func checkConservation(t *rapid.T, in, left Quantity, trades []Trade) {
	t.Helper()
	var traded Quantity
	for _, tr := range trades {
		if tr.Bid.Quantity != tr.Ask.Quantity || tr.Quantity() <= 0 {
			t.Fatalf("malformed trade %+v", tr)
		}
		if tr.Bid.Price < tr.Ask.Price {
			t.Fatalf("trade below the ask: %+v", tr)
		}
		traded += tr.Quantity()
	}
	if in != left+2*traded {
		t.Fatalf("quantity not conserved: in %d, left %d, traded %d", in, left, traded)
	}
}
