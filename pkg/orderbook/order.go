package orderbook

import "fmt"

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) valid() bool {
	return s == BUY || s == SELL
}

// Opposite returns the side an order of this side trades against.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

type OrderType string

const (
	GTC OrderType = "GTC" // good till cancel
	FAK OrderType = "FAK" // fill and kill
)

func (t OrderType) valid() bool {
	return t == GTC || t == FAK
}

type (
	OrderID  int64
	Price    int64 // minor currency units
	Quantity int64
)

// Order is one resting intent. Only Fill mutates it; a modify replaces the
// order with a new one carrying the same id.
type Order struct {
	id        OrderID
	side      Side
	orderType OrderType
	price     Price
	initial   Quantity
	remaining Quantity
}

func NewOrder(orderType OrderType, id OrderID, side Side, price Price, qty Quantity) *Order {
	return &Order{
		id:        id,
		side:      side,
		orderType: orderType,
		price:     price,
		initial:   qty,
		remaining: qty,
	}
}

func (o *Order) ID() OrderID { return o.id }
func (o *Order) Side() Side { return o.side }
func (o *Order) Type() OrderType { return o.orderType }
func (o *Order) Price() Price { return o.price }
func (o *Order) InitialQuantity() Quantity { return o.initial }
func (o *Order) RemainingQuantity() Quantity { return o.remaining }
func (o *Order) FilledQuantity() Quantity { return o.initial - o.remaining }
func (o *Order) IsFilled() bool { return o.remaining == 0 }

// Fill reduces the remaining quantity. Filling more than what remains
// means the matching loop is broken.
func (o *Order) Fill(qty Quantity) error {
	if qty > o.remaining {
		return fmt.Errorf("%w: order %d fill %d exceeds remaining %d",
			ErrInvariantViolation, o.id, qty, o.remaining)
	}
	if qty < 0 {
		return fmt.Errorf("%w: order %d negative fill %d", ErrInvariantViolation, o.id, qty)
	}
	o.remaining -= qty
	return nil
}

func (o *Order) String() string {
	return fmt.Sprintf("%s %s #%d %d@%d (%d left)",
		o.orderType, o.side, o.id, o.initial, o.price, o.remaining)
}

// OrderModify carries the replacement values for ModifyOrder. The order
// type is not part of it: the replacement keeps the original type.
type OrderModify struct {
	ID       OrderID
	Side     Side
	Price    Price
	Quantity Quantity
}

func (m OrderModify) toOrder(orderType OrderType) *Order {
	return NewOrder(orderType, m.ID, m.Side, m.Price, m.Quantity)
}

// OrderInfo is a detached copy of a resting order.
type OrderInfo struct {
	ID        OrderID
	Side      Side
	Type      OrderType
	Price     Price
	Initial   Quantity
	Remaining Quantity
}

func (o *Order) info() OrderInfo {
	return OrderInfo{
		ID:        o.id,
		Side:      o.side,
		Type:      o.orderType,
		Price:     o.price,
		Initial:   o.initial,
		Remaining: o.remaining,
	}
}
