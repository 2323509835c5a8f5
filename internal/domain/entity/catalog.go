package entity

// Catalog is a read-only name → unit-price view of the items table, taken
// once per bill computation so a finalize works against a consistent set of
// prices. Lookups by exact name; a miss is a typed result, never a panic.
type Catalog struct {
	prices map[string]int64
}

// NewCatalog builds a catalog from loaded items.
func NewCatalog(items []Item) *Catalog {
	prices := make(map[string]int64, len(items))
	for _, item := range items {
		prices[item.Name] = item.PricePaise
	}
	return &Catalog{prices: prices}
}

// Price returns the unit price in paise for an item name, and whether the
// item exists in the catalog.
func (c *Catalog) Price(name string) (int64, bool) {
	price, ok := c.prices[name]
	return price, ok
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.prices)
}
