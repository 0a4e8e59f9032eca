package orderbook

// TradeInfo is one side of a trade. Price is the price of the level the
// order rested at, so the bid and ask side of a trade may differ.
type TradeInfo struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

func (t Trade) Quantity() Quantity {
	return t.Bid.Quantity
}
