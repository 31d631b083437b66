package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/ports"
)

// MemoryStore is an in-memory ports.RegistryStore with the same query
// semantics as the Postgres adapter. It backs unit tests and local runs
// without a database; FailPartition simulates partition-level outages so
// partial-failure handling can be exercised deterministically.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string][]domain.DomainRecord
	failing    map[string]bool
	batchSize  int
	closed     bool
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partitions: make(map[string][]domain.DomainRecord),
		failing:    make(map[string]bool),
	}
}

// Add inserts records into a TLD partition, creating it if needed.
func (s *MemoryStore) Add(tld string, records ...domain.DomainRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tld = strings.ToLower(tld)
	for i := range records {
		records[i].TLD = tld
	}
	s.partitions[tld] = append(s.partitions[tld], records...)
}

// FailPartition marks a partition so every query against it fails.
func (s *MemoryStore) FailPartition(tld string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[strings.ToLower(tld)] = true
}

// Partitions returns the known TLDs in sorted order, matching the catalog
// ordering of the Postgres adapter.
func (s *MemoryStore) Partitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tlds := make([]string, 0, len(s.partitions))
	for tld := range s.partitions {
		tlds = append(tlds, tld)
	}
	sort.Strings(tlds)
	return tlds, nil
}

func (s *MemoryStore) resolve(ctx context.Context, tlds []string) []string {
	if len(tlds) > 0 {
		out := make([]string, 0, len(tlds))
		for _, tld := range tlds {
			out = append(out, strings.ToLower(tld))
		}
		return out
	}
	known, _ := s.Partitions(ctx)
	return known
}

// query fans the filter over the selected partitions, collecting failures
// the same way the Postgres adapter does.
func (s *MemoryStore) query(ctx context.Context, tlds []string, keep func(domain.DomainRecord) bool, perPartitionLimit int) ([]domain.DomainRecord, ports.PartitionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partitions := s.resolve(ctx, tlds)
	report := ports.PartitionReport{Queried: partitions}
	var all []domain.DomainRecord

	for _, tld := range partitions {
		if s.failing[tld] {
			report.Failed = append(report.Failed, tld)
			continue
		}
		count := 0
		for _, rec := range s.partitions[tld] {
			if perPartitionLimit > 0 && count >= perPartitionLimit {
				break
			}
			if keep(rec) {
				all = append(all, rec)
				count++
			}
		}
	}

	if len(report.Failed) == len(partitions) && len(partitions) > 0 {
		return nil, report, domain.ErrStoreUnavailable
	}
	return all, report, nil
}

// SetBatchSize makes FindExact process the label set in chunks the way the
// Postgres adapter does, so tests can verify batching never changes results.
func (s *MemoryStore) SetBatchSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchSize = n
}

// FindExact implements ports.RegistryStore. The label set is looked up batch
// by batch; each label falls in exactly one batch, so the union is the same
// result set regardless of batch size.
func (s *MemoryStore) FindExact(ctx context.Context, labels []string, window domain.TimeWindow, tlds []string) ([]domain.DomainRecord, ports.PartitionReport, error) {
	s.mu.RLock()
	size := s.batchSize
	s.mu.RUnlock()

	if len(labels) == 0 {
		return s.query(ctx, tlds, func(domain.DomainRecord) bool { return false }, 0)
	}

	var all []domain.DomainRecord
	var report ports.PartitionReport
	for i, batch := range batchLabels(labels, size) {
		wanted := make(map[string]struct{}, len(batch))
		for _, l := range batch {
			wanted[l] = struct{}{}
		}
		records, r, err := s.query(ctx, tlds, func(rec domain.DomainRecord) bool {
			_, ok := wanted[rec.Label]
			return ok && window.Contains(rec.FirstSeen)
		}, 0)
		if err != nil {
			return nil, r, err
		}
		if i == 0 {
			report = r
		}
		all = append(all, records...)
	}
	return all, report, nil
}

// FindKeyword implements ports.RegistryStore. The limit is cumulative across
// partitions in catalog order.
func (s *MemoryStore) FindKeyword(ctx context.Context, keyword string, window domain.TimeWindow, tlds []string, limit int) ([]domain.DomainRecord, ports.PartitionReport, error) {
	needle := strings.ToLower(keyword)
	records, report, err := s.query(ctx, tlds, func(rec domain.DomainRecord) bool {
		return strings.Contains(strings.ToLower(rec.Label), needle) && window.Contains(rec.FirstSeen)
	}, 0)
	if err != nil {
		return nil, report, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, report, nil
}

// ScanByLength implements ports.RegistryStore.
func (s *MemoryStore) ScanByLength(ctx context.Context, minLen, maxLen int, window domain.TimeWindow, tlds []string, limitPerPartition int) ([]domain.DomainRecord, ports.PartitionReport, error) {
	return s.query(ctx, tlds, func(rec domain.DomainRecord) bool {
		n := len([]rune(rec.Label))
		return n >= minLen && n <= maxLen && window.Contains(rec.FirstSeen)
	}, limitPerPartition)
}

// Ping implements ports.RegistryStore.
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("%w: store closed", domain.ErrStoreUnavailable)
	}
	return nil
}

// Close implements ports.RegistryStore.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
