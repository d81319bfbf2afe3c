// Package metrics holds the Prometheus instruments shared by the registry,
// the validation engine, and the service layer.  All collectors are
// registered with the global registry, so mounting promhttp.Handler() is
// enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveVersions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "requirement_versions_active",
			Help: "Number of requirement caches currently held in memory.",
		})

	CacheBuildTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requirement_cache_build_total",
			Help: "Cumulative number of requirement caches built.",
		})

	CacheBuildErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requirement_cache_build_errors_total",
			Help: "Cumulative number of failed requirement fetches or builds, by kind.",
		}, []string{"kind"})

	CacheEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requirement_cache_evict_total",
			Help: "Cumulative number of requirement caches evicted.",
		})

	EntriesCheckedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "validation_entries_checked_total",
			Help: "Cumulative number of record entries checked against requirements.",
		})

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_errors_total",
			Help: "Cumulative number of content validation errors, by type.",
		}, []string{"type"})

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_requests_total",
			Help: "Validation requests handled, by outcome.",
		}, []string{"outcome"})

	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "validation_request_duration_seconds",
			Help:    "Wall time of one validation request, setup included.",
			Buckets: prometheus.DefBuckets,
		})
)

func init() {
	prometheus.MustRegister(
		ActiveVersions,
		CacheBuildTotal,
		CacheBuildErrorsTotal,
		CacheEvictTotal,
		EntriesCheckedTotal,
		ValidationErrorsTotal,
		RequestsTotal,
		RequestDuration,
	)
}
