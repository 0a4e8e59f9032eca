package orderbook

// priceLevel is the FIFO of orders resting at one price, linked through
// the arena. volume tracks the sum of remaining quantities.
type priceLevel struct {
	price  Price
	head   int32
	tail   int32
	count  int
	volume Quantity
}

func newPriceLevel(price Price) *priceLevel {
	return &priceLevel{
		price: price,
		head:  nilSlot,
		tail:  nilSlot,
	}
}

func (l *priceLevel) empty() bool {
	return l.count == 0
}

func (l *priceLevel) pushBack(a *orderArena, o *Order) position {
	p := a.alloc(o)

	s := &a.slots[p.slot]
	s.prev = l.tail
	if l.tail != nilSlot {
		a.slots[l.tail].next = p.slot
	} else {
		l.head = p.slot
	}
	l.tail = p.slot

	l.count++
	l.volume += o.RemainingQuantity()
	return p
}

func (l *priceLevel) front(a *orderArena) *Order {
	if l.head == nilSlot {
		return nil
	}
	return a.slots[l.head].order
}

func (l *priceLevel) remove(a *orderArena, p position) {
	a.mustValid(p)

	s := a.slots[p.slot]
	if s.prev != nilSlot {
		a.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilSlot {
		a.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}

	l.count--
	l.volume -= s.order.RemainingQuantity()
	a.release(p)
}

// filled keeps volume in step with a fill applied to an order of this level.
func (l *priceLevel) filled(qty Quantity) {
	l.volume -= qty
}

func (l *priceLevel) each(a *orderArena, fn func(o *Order) bool) {
	for i := l.head; i != nilSlot; i = a.slots[i].next {
		if !fn(a.slots[i].order) {
			return
		}
	}
}
