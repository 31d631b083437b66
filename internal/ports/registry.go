package ports

import (
	"context"

	"github.com/brandsec/similarity-engine/internal/domain"
)

// PartitionReport describes how complete a fan-out query was. A failed
// partition does not abort the query; its absence is reported here so the
// caller can expose degraded completeness instead of silently swallowing it.
type PartitionReport struct {
	Queried []string `json:"partitions_queried"`
	Failed  []string `json:"failed_partitions,omitempty"`
}

// Degraded reports whether any partition failed.
func (r PartitionReport) Degraded() bool {
	return len(r.Failed) > 0
}

// RegistryStore defines the read-only contract against the external
// observed-domain registry. The registry is partitioned by TLD; every query
// takes an optional partition filter (nil means all known partitions,
// discovered from the store's catalog at call time) and a half-open time
// window over first-seen timestamps.
//
// Implementations must support concurrent independent queries: partition
// fan-out is the primary latency driver.
type RegistryStore interface {
	// Partitions returns the TLDs the registry currently holds.
	Partitions(ctx context.Context) ([]string, error)

	// FindExact returns every record whose label is in labels and whose
	// first-seen timestamp falls inside window. Lookups are batched
	// internally; batching never alters the result set.
	FindExact(ctx context.Context, labels []string, window domain.TimeWindow, tlds []string) ([]domain.DomainRecord, PartitionReport, error)

	// FindKeyword returns records whose label contains keyword
	// case-insensitively, capped at limit cumulatively across partitions.
	FindKeyword(ctx context.Context, keyword string, window domain.TimeWindow, tlds []string, limit int) ([]domain.DomainRecord, PartitionReport, error)

	// ScanByLength returns records whose label length lies in
	// [minLen, maxLen], capped per partition at limitPerPartition. This is
	// the pre-filter bounding the scorer's input size.
	ScanByLength(ctx context.Context, minLen, maxLen int, window domain.TimeWindow, tlds []string, limitPerPartition int) ([]domain.DomainRecord, PartitionReport, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
