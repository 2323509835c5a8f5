package entity

// CartLine is one in-progress selection: an item name and a quantity.
// Quantity is always positive; a zero quantity means the line was removed
// and is never stored.
type CartLine struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CartSnapshot is a point-in-time copy of one table's cart, in insertion
// order. Snapshots are detached from the live cart: mutating the cart after
// taking one does not change it.
type CartSnapshot struct {
	TableID string     `json:"table"`
	Lines   []CartLine `json:"lines"`
}

// Empty reports whether the snapshot has no lines.
func (s CartSnapshot) Empty() bool {
	return len(s.Lines) == 0
}
