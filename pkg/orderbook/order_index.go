package orderbook

// orderEntry is where a resting order lives: its side and price pick the
// level, pos picks the FIFO node.
type orderEntry struct {
	order *Order
	side  Side
	price Price
	pos   position
}

type orderIndex struct {
	entries map[OrderID]orderEntry
}

func newOrderIndex() *orderIndex {
	return &orderIndex{
		entries: make(map[OrderID]orderEntry),
	}
}

func (x *orderIndex) contains(id OrderID) bool {
	_, ok := x.entries[id]
	return ok
}

func (x *orderIndex) get(id OrderID) (orderEntry, bool) {
	e, ok := x.entries[id]
	return e, ok
}

func (x *orderIndex) put(id OrderID, e orderEntry) {
	x.entries[id] = e
}

func (x *orderIndex) remove(id OrderID) {
	delete(x.entries, id)
}

func (x *orderIndex) len() int {
	return len(x.entries)
}
