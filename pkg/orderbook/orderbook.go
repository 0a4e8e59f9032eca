// file: pkg/orderbook/orderbook.go

package orderbook

// Orderbook holds the resting orders of one instrument and matches them by
// price-time priority. It is owned by a single caller and is not safe for
// concurrent use; wrap it in an engine.Engine to share it.
type Orderbook struct {
	levels *priceLevels
	orders *orderIndex
}

func New() *Orderbook {
	return &Orderbook{
		levels: newPriceLevels(),
		orders: newOrderIndex(),
	}
}

// AddOrder rests the order and runs matching. A rejected order leaves the
// book untouched and returns no trades.
func (ob *Orderbook) AddOrder(order *Order) ([]Trade, error) {
	if err := validateOrder(order.Type(), order.Side(), order.RemainingQuantity()); err != nil {
		return nil, err
	}
	if ob.orders.contains(order.ID()) {
		return nil, ErrDuplicateOrder
	}
	if order.Type() == FAK && !ob.levels.canMatch(order.Side(), order.Price()) {
		return nil, ErrNoImmediateMatch
	}

	pos := ob.levels.insert(order.Side(), order.Price(), order)
	ob.orders.put(order.ID(), orderEntry{
		order: order,
		side:  order.Side(),
		price: order.Price(),
		pos:   pos,
	})

	return ob.match(), nil
}

func (ob *Orderbook) CancelOrder(id OrderID) error {
	if !ob.orders.contains(id) {
		return ErrOrderNotFound
	}
	ob.removeOrder(id)
	return nil
}

// ModifyOrder replaces a resting order: the old one is cancelled and a new
// one with the same id and type is submitted. The replacement queues at the
// tail of its level, so time priority is lost even if the price is
// unchanged.
func (ob *Orderbook) ModifyOrder(m OrderModify) ([]Trade, error) {
	e, ok := ob.orders.get(m.ID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	orderType := e.order.Type()
	if err := validateOrder(orderType, m.Side, m.Quantity); err != nil {
		return nil, err
	}

	ob.removeOrder(m.ID)
	return ob.AddOrder(m.toOrder(orderType))
}

// Size is the number of resting orders.
func (ob *Orderbook) Size() int {
	return ob.orders.len()
}

// removeOrder drops a resting order from its level and the index.
func (ob *Orderbook) removeOrder(id OrderID) {
	e, ok := ob.orders.get(id)
	if !ok {
		return
	}
	ob.levels.remove(e.side, e.price, e.pos)
	ob.orders.remove(id)
}

func validateOrder(orderType OrderType, side Side, qty Quantity) error {
	if !orderType.valid() {
		return ErrInvalidOrderType
	}
	if !side.valid() {
		return ErrInvalidSide
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
