package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Searches          *prometheus.CounterVec
	SearchDuration    *prometheus.HistogramVec
	PartitionFailures prometheus.Counter
	DomainsScanned    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Searches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "similarity_engine_searches_total",
			Help: "Total searches handled, by detection mode.",
		}, []string{"mode"}),
		SearchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "similarity_engine_search_duration_seconds",
			Help:    "Search latency, by detection mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		PartitionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "similarity_engine_partition_failures_total",
			Help: "Registry partition queries that failed.",
		}),
		DomainsScanned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "similarity_engine_domains_scanned_total",
			Help: "Registry records fed to the similarity scorer.",
		}),
	}
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(mode string, duration time.Duration) {
	m.Searches.WithLabelValues(mode).Inc()
	m.SearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// AddPartitionFailures records failed partition queries.
func (m *Metrics) AddPartitionFailures(n int) {
	m.PartitionFailures.Add(float64(n))
}

// AddDomainsScanned records how many records one similarity scan covered.
func (m *Metrics) AddDomainsScanned(n int) {
	m.DomainsScanned.Add(float64(n))
}
