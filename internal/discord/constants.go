package discord

import "time"

const (
	// PageSize is the number of items shown per category page.
	PageSize = 10

	// MessageTTL is how long a market response stays visible before the
	// bot deletes it to keep channels clean.
	MessageTTL = 90 * time.Second

	// InteractionTimeout bounds upstream work done inside an
	// interaction. Discord drops interactions that take longer anyway.
	InteractionTimeout = 5 * time.Second

	// PageSessionTTL is how long pagination state is kept. It outlives
	// MessageTTL so late button clicks still resolve.
	PageSessionTTL = 10 * time.Minute

	// PageSessionLimit caps concurrently tracked paginated messages.
	PageSessionLimit = 256

	// SuggestTTL is how long memoized autocomplete choice lists stay
	// valid. Keystrokes within a burst reuse the same upstream data.
	SuggestTTL = 30 * time.Second

	// SuggestLimit caps memoized autocomplete queries.
	SuggestLimit = 512
)

// Component custom ID prefixes. The session key follows the colon.
const (
	ComponentPrevPage = "market_prev"
	ComponentNextPage = "market_next"
	ComponentDone     = "market_done"
)

// Embed colors.
const (
	ColorMarket = 0xf1c40f
	ColorInfo   = 0x3498db
	ColorError  = 0xe74c3c
)

// ItemImageBase is the sprite service serving item icons by identifier.
const ItemImageBase = "https://mc.nerothe.com/img/1.21/minecraft_%s.png"
