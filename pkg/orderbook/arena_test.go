package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaReusesReleasedSlots(t *testing.T) {
	var a orderArena

	p1 := a.alloc(gtc(1, BUY, 100, 1))
	p2 := a.alloc(gtc(2, BUY, 100, 1))
	require.Equal(t, 2, a.live())

	a.release(p1)
	assert.False(t, a.valid(p1))
	assert.True(t, a.valid(p2))
	assert.Equal(t, 1, a.live())

	p3 := a.alloc(gtc(3, BUY, 100, 1))
	assert.Equal(t, p1.slot, p3.slot, "released slot should be recycled")
	assert.NotEqual(t, p1.gen, p3.gen)
	assert.False(t, a.valid(p1), "old handle must stay stale after reuse")
	assert.Len(t, a.slots, 2)
}

func TestArenaStalePositionPanics(t *testing.T) {
	var a orderArena
	p := a.alloc(gtc(1, SELL, 100, 1))
	a.release(p)

	assert.PanicsWithError(t,
		"order book invariant violation: stale position slot=0 gen=0",
		func() { a.mustValid(p) })
	assert.False(t, a.valid(position{slot: 42}))
	assert.False(t, a.valid(position{slot: nilSlot}))
}

func TestPriceLevelFIFO(t *testing.T) {
	var a orderArena
	l := newPriceLevel(100)

	var pos []position
	for i := 1; i <= 3; i++ {
		pos = append(pos, l.pushBack(&a, gtc(OrderID(i), SELL, 100, Quantity(i*10))))
	}
	require.Equal(t, 3, l.count)
	require.Equal(t, Quantity(60), l.volume)
	assert.Equal(t, OrderID(1), l.front(&a).ID())

	l.remove(&a, pos[0])
	assert.Equal(t, OrderID(2), l.front(&a).ID())
	assert.Equal(t, Quantity(50), l.volume)

	l.remove(&a, pos[2])
	var ids []OrderID
	l.each(&a, func(o *Order) bool {
		ids = append(ids, o.ID())
		return true
	})
	assert.Equal(t, []OrderID{2}, ids)
	assert.Equal(t, pos[1].slot, l.head)
	assert.Equal(t, pos[1].slot, l.tail)

	l.remove(&a, pos[1])
	assert.True(t, l.empty())
	assert.Nil(t, l.front(&a))
	assert.Equal(t, Quantity(0), l.volume)
}

func TestBookSideOrdering(t *testing.T) {
	bids := newBookSide(BUY)
	asks := newBookSide(SELL)
	for _, p := range []Price{99, 101, 100} {
		bids.getOrCreate(p)
		asks.getOrCreate(p)
	}

	assert.Equal(t, Price(101), bids.best().price)
	assert.Equal(t, Price(99), asks.best().price)

	var got []Price
	asks.walk(func(l *priceLevel) bool {
		got = append(got, l.price)
		return true
	})
	assert.Equal(t, []Price{99, 100, 101}, got)
}

func TestOrderFill(t *testing.T) {
	o := gtc(1, BUY, 100, 10)

	require.NoError(t, o.Fill(4))
	assert.Equal(t, Quantity(6), o.RemainingQuantity())
	assert.Equal(t, Quantity(4), o.FilledQuantity())
	assert.False(t, o.IsFilled())

	err := o.Fill(7)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, Quantity(6), o.RemainingQuantity(), "failed fill must not change the order")

	require.NoError(t, o.Fill(6))
	assert.True(t, o.IsFilled())
}

func TestDepth(t *testing.T) {
	ob := New()
	for i, p := range []Price{100, 99, 98, 97} {
		mustAdd(t, ob, gtc(OrderID(i+1), BUY, p, 10))
	}
	mustAdd(t, ob, gtc(10, SELL, 105, 5))
	mustAdd(t, ob, gtc(11, SELL, 105, 7))

	d := ob.Depth(2)
	assert.Equal(t, []LevelInfo{
		{Price: 100, Quantity: 10, Orders: 1},
		{Price: 99, Quantity: 10, Orders: 1},
	}, d.Bids)
	assert.Equal(t, []LevelInfo{{Price: 105, Quantity: 12, Orders: 2}}, d.Asks)

	assert.Len(t, ob.Depth(0).Bids, 4)

	empty := New().Snapshot()
	assert.Empty(t, empty.Bids)
	assert.Empty(t, empty.Asks)
}
