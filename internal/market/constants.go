package market

import "time"

// Upstream endpoint paths
const (
	EndpointCategories = "/market/categories"
	EndpointItems      = "/market/items"
	EndpointPrices     = "/market/prices"
)

// Client settings
const (
	UserAgent      = "OpSucht Market Bot v1.1.5"
	RequestTimeout = 10 * time.Second
)

// singleflight keys for the cold-start paths
const (
	flightKeyCategories = "categories"
	flightKeyCatalog    = "catalog"
)
