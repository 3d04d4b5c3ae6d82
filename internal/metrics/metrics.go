package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream API metrics
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequestsTotal,
			Help: HelpTextUpstreamRequestsTotal,
		},
		[]string{LabelEndpoint},
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequestErrors,
			Help: HelpTextUpstreamRequestErrors,
		},
		[]string{LabelEndpoint},
	)

	UpstreamDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamDecodeFailures,
			Help: HelpTextUpstreamDecodeFailures,
		},
		[]string{LabelEndpoint},
	)
)

// Cache metrics
var (
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheHits,
			Help: HelpTextCatalogCacheHits,
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheMisses,
			Help: HelpTextCatalogCacheMisses,
		},
	)

	CatalogBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogBuilds,
			Help: HelpTextCatalogBuilds,
		},
	)

	CachedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCachedItems,
			Help: HelpTextCachedItems,
		},
	)
)

// Discord interaction metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand},
	)

	AutocompleteTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutocompleteTotal,
			Help: HelpTextAutocompleteTotal,
		},
		[]string{LabelCommand},
	)

	AutocompleteTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutocompleteTimeouts,
			Help: HelpTextAutocompleteTimeouts,
		},
		[]string{LabelCommand},
	)
)
