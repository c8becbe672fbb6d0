// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendations_cache_hits_total",
		Help: "Recommendation reads served from the latest cached record.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendations_cache_misses_total",
		Help: "Recommendation reads that triggered regeneration.",
	})

	RecordsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendations_generated_total",
		Help: "Recommendation sets generated, labeled by result source.",
	}, []string{"source"})

	GeneratorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generator_failures_total",
		Help: "Name-generator calls that failed or returned no names.",
	})

	LookupsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detail_lookups_dropped_total",
		Help: "Candidate names dropped because detail resolution failed.",
	})
)
