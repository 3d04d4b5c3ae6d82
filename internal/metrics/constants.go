package metrics

// Metric names
const (
	MetricNameUpstreamRequestsTotal  = "market_upstream_requests_total"
	MetricNameUpstreamRequestErrors  = "market_upstream_request_errors_total"
	MetricNameUpstreamDecodeFailures = "market_upstream_decode_failures_total"
	MetricNameCatalogCacheHits       = "market_catalog_cache_hits_total"
	MetricNameCatalogCacheMisses     = "market_catalog_cache_misses_total"
	MetricNameCatalogBuilds          = "market_catalog_builds_total"
	MetricNameCachedItems            = "market_cached_items"
	MetricNameCommandsTotal          = "discord_commands_total"
	MetricNameAutocompleteTotal      = "discord_autocomplete_requests_total"
	MetricNameAutocompleteTimeouts   = "discord_autocomplete_timeouts_total"
)

// Help texts
const (
	HelpTextUpstreamRequestsTotal  = "Total HTTP requests issued against the upstream market API"
	HelpTextUpstreamRequestErrors  = "Upstream market API requests that failed at the transport level or returned non-2xx"
	HelpTextUpstreamDecodeFailures = "Upstream market API responses with an empty or malformed body"
	HelpTextCatalogCacheHits       = "Full-catalog reads served from the in-memory cache"
	HelpTextCatalogCacheMisses     = "Full-catalog reads that triggered a catalog build"
	HelpTextCatalogBuilds          = "Completed full-catalog synchronization passes"
	HelpTextCachedItems            = "Number of items currently held in the item/order cache"
	HelpTextCommandsTotal          = "Slash commands handled, by command name"
	HelpTextAutocompleteTotal      = "Autocomplete interactions handled, by command name"
	HelpTextAutocompleteTimeouts   = "Autocomplete lookups that hit the interactive timeout and degraded to no results"
)

// Label names
const (
	LabelEndpoint = "endpoint"
	LabelCommand  = "command"
)
