package domain

// OrderSide distinguishes standing buy offers from sell offers.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Category is a named grouping of marketplace items. The upstream API
// returns categories either as bare strings or as objects with a name
// field depending on deployment; both are normalized into this type at
// the client boundary.
type Category struct {
	Name string `json:"name"`
}

// Order is a standing buy or sell offer for an item.
type Order struct {
	Side         OrderSide `json:"orderSide"`
	Price        float64   `json:"price"`
	ActiveOrders int       `json:"activeOrders"`
}

// CatalogEntry is the cached state for one item: the category it
// belongs to and its current order book.
type CatalogEntry struct {
	Category string  `json:"category"`
	Orders   []Order `json:"orders"`
}

// ItemRef is the lightweight per-category listing result: it names the
// category an item belongs to without carrying the order book.
type ItemRef struct {
	Category string `json:"category"`
}
