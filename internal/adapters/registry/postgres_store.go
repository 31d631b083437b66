package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/ports"
)

// PostgresStore implements ports.RegistryStore against a Postgres registry
// where each TLD lives in its own table ("registry_com", "registry_com_tr").
// The store is strictly read-only for this service; InitSchema exists only
// to bootstrap partitions in local development.
type PostgresStore struct {
	db          *sql.DB
	batchSize   int
	maxParallel int
}

const recordColumns = "id, label, fqdn, first_seen, last_seen, dns_records"

// NewPostgresStore opens a pooled connection to the registry database.
// batchSize bounds the label-set size per exact-lookup query; maxParallel
// bounds concurrent partition queries.
func NewPostgresStore(connStr string, batchSize, maxParallel int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	batchSize, maxParallel = normalizeStoreLimits(batchSize, maxParallel)

	// The partition fan-out issues independent queries concurrently, so the
	// pool must be at least as wide as the parallelism bound.
	db.SetMaxOpenConns(maxParallel + 2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db, batchSize: batchSize, maxParallel: maxParallel}, nil
}

// normalizeStoreLimits applies defaults for unset or nonsensical limits. It
// must run before the pool is sized, since the pool width derives from the
// parallelism bound.
func normalizeStoreLimits(batchSize, maxParallel int) (int, int) {
	if batchSize <= 0 {
		batchSize = 1000
	}
	if maxParallel <= 0 {
		maxParallel = 8
	}
	return batchSize, maxParallel
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping reports backing-store reachability for health checks.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// partitionTable converts a TLD to its table name. Dots and dashes collapse
// to underscores the same way in both directions, which keeps the catalog
// round-trip consistent.
func partitionTable(tld string) string {
	safe := strings.ToLower(tld)
	safe = strings.ReplaceAll(safe, ".", "_")
	safe = strings.ReplaceAll(safe, "-", "_")
	return "registry_" + safe
}

func tableTLD(table string) string {
	return strings.ReplaceAll(strings.TrimPrefix(table, "registry_"), "_", ".")
}

// Partitions discovers the TLD catalog from the schema at call time; nothing
// is hardcoded, so newly fed TLDs appear without a restart.
func (s *PostgresStore) Partitions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name LIKE 'registry\_%'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var tlds []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, err
		}
		tlds = append(tlds, tableTLD(table))
	}
	return tlds, rows.Err()
}

// resolvePartitions applies the caller's TLD filter, defaulting to the full
// catalog when no filter is given.
func (s *PostgresStore) resolvePartitions(ctx context.Context, tlds []string) ([]string, error) {
	if len(tlds) > 0 {
		out := make([]string, 0, len(tlds))
		for _, tld := range tlds {
			out = append(out, strings.ToLower(tld))
		}
		return out, nil
	}
	known, err := s.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return known, nil
}

// FindExact looks up a set of candidate labels across partitions. The label
// set is split into fixed-size batches per partition to respect query-size
// limits; batch boundaries never change the result set. Partitions are
// queried concurrently up to the parallelism bound; a failed partition is
// recorded in the report, not fatal, unless every partition fails.
func (s *PostgresStore) FindExact(ctx context.Context, labels []string, window domain.TimeWindow, tlds []string) ([]domain.DomainRecord, ports.PartitionReport, error) {
	partitions, err := s.resolvePartitions(ctx, tlds)
	if err != nil {
		return nil, ports.PartitionReport{}, err
	}

	return s.fanOut(ctx, partitions, func(ctx context.Context, tld string) ([]domain.DomainRecord, error) {
		var records []domain.DomainRecord
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE label = ANY($1) AND first_seen >= $2 AND first_seen < $3
		`, recordColumns, pq.QuoteIdentifier(partitionTable(tld)))

		for _, batch := range batchLabels(labels, s.batchSize) {
			found, err := s.queryRecords(ctx, tld, query, pq.Array(batch), window.Start, window.End)
			if err != nil {
				return nil, err
			}
			records = append(records, found...)
		}
		return records, nil
	})
}

// batchLabels splits a label set into fixed-size chunks. Each label lands in
// exactly one chunk, so querying chunk by chunk and concatenating yields the
// same result set as one unbatched query. A non-positive size means no
// splitting.
func batchLabels(labels []string, size int) [][]string {
	if len(labels) == 0 {
		return nil
	}
	if size <= 0 || size >= len(labels) {
		return [][]string{labels}
	}
	batches := make([][]string, 0, (len(labels)+size-1)/size)
	for start := 0; start < len(labels); start += size {
		end := start + size
		if end > len(labels) {
			end = len(labels)
		}
		batches = append(batches, labels[start:end])
	}
	return batches
}

// FindKeyword searches for labels containing keyword, case-insensitively.
// The limit is cumulative across partitions: partitions are visited in
// catalog order and skipped entirely once the cap is reached, so this path
// stays sequential by design.
func (s *PostgresStore) FindKeyword(ctx context.Context, keyword string, window domain.TimeWindow, tlds []string, limit int) ([]domain.DomainRecord, ports.PartitionReport, error) {
	partitions, err := s.resolvePartitions(ctx, tlds)
	if err != nil {
		return nil, ports.PartitionReport{}, err
	}

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	report := ports.PartitionReport{}
	var matches []domain.DomainRecord

	for _, tld := range partitions {
		if len(matches) >= limit {
			break
		}
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE label ILIKE $1 AND first_seen >= $2 AND first_seen < $3
			LIMIT $4
		`, recordColumns, pq.QuoteIdentifier(partitionTable(tld)))

		records, err := s.queryRecords(ctx, tld, query, pattern, window.Start, window.End, limit-len(matches))
		report.Queried = append(report.Queried, tld)
		if err != nil {
			report.Failed = append(report.Failed, tld)
			continue
		}
		matches = append(matches, records...)
	}

	if len(report.Failed) == len(report.Queried) && len(report.Queried) > 0 {
		return nil, report, domain.ErrStoreUnavailable
	}
	return matches, report, nil
}

// ScanByLength returns records whose label length falls in [minLen, maxLen],
// capped per partition. Partitions are scanned concurrently.
func (s *PostgresStore) ScanByLength(ctx context.Context, minLen, maxLen int, window domain.TimeWindow, tlds []string, limitPerPartition int) ([]domain.DomainRecord, ports.PartitionReport, error) {
	partitions, err := s.resolvePartitions(ctx, tlds)
	if err != nil {
		return nil, ports.PartitionReport{}, err
	}
	if minLen < 1 {
		minLen = 1
	}

	return s.fanOut(ctx, partitions, func(ctx context.Context, tld string) ([]domain.DomainRecord, error) {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE char_length(label) BETWEEN $1 AND $2
			  AND first_seen >= $3 AND first_seen < $4
			LIMIT $5
		`, recordColumns, pq.QuoteIdentifier(partitionTable(tld)))

		return s.queryRecords(ctx, tld, query, minLen, maxLen, window.Start, window.End, limitPerPartition)
	})
}

// fanOut runs one query per partition concurrently, bounded by maxParallel.
// Each goroutine writes only its own slot, so no locking is needed; results
// are concatenated in partition order afterwards for deterministic output.
// Per-partition failures are collected rather than cancelling the group —
// partial results are still worth returning — but if the caller's context is
// done, in-flight queries are cancelled cooperatively.
func (s *PostgresStore) fanOut(ctx context.Context, partitions []string, query func(ctx context.Context, tld string) ([]domain.DomainRecord, error)) ([]domain.DomainRecord, ports.PartitionReport, error) {
	results := make([][]domain.DomainRecord, len(partitions))
	failures := make([]error, len(partitions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, tld := range partitions {
		i, tld := i, tld
		g.Go(func() error {
			records, err := query(gctx, tld)
			if err != nil {
				failures[i] = err
				// Only context cancellation aborts the whole fan-out.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, ports.PartitionReport{}, err
	}

	report := ports.PartitionReport{Queried: partitions}
	var all []domain.DomainRecord
	failed := 0
	for i := range partitions {
		if failures[i] != nil {
			report.Failed = append(report.Failed, partitions[i])
			failed++
			continue
		}
		all = append(all, results[i]...)
	}

	if failed == len(partitions) && len(partitions) > 0 {
		return nil, report, fmt.Errorf("%w: all %d partitions failed", domain.ErrStoreUnavailable, failed)
	}
	return all, report, nil
}

// queryRecords executes one partition query and scans the rows.
func (s *PostgresStore) queryRecords(ctx context.Context, tld, query string, args ...any) ([]domain.DomainRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", tld, err)
	}
	defer rows.Close()

	var records []domain.DomainRecord
	for rows.Next() {
		var rec domain.DomainRecord
		var dnsJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.FQDN, &rec.FirstSeen, &rec.LastSeen, &dnsJSON); err != nil {
			return nil, fmt.Errorf("partition %s: %w", tld, err)
		}
		dns, err := decodeDNSRecords(dnsJSON)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", tld, err)
		}
		rec.DNSRecords = dns
		rec.TLD = tld
		records = append(records, rec)
	}
	return records, rows.Err()
}

// decodeDNSRecords parses the dns_records JSONB column. NULL and empty
// payloads are fine; a malformed payload is a row error, not something to
// drop silently.
func decodeDNSRecords(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records map[string]string
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("malformed dns_records: %w", err)
	}
	return records, nil
}

// escapeLike escapes the ILIKE metacharacters so the keyword is matched
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// InitSchema creates partition tables for the given TLDs if they do not
// exist. The registry is fed by an external pipeline in every real
// deployment; this is for local development only.
func (s *PostgresStore) InitSchema(ctx context.Context, tlds []string) error {
	for _, tld := range tlds {
		schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			label VARCHAR(253) NOT NULL,
			fqdn VARCHAR(253) NOT NULL,
			first_seen TIMESTAMP NOT NULL,
			last_seen TIMESTAMP NOT NULL,
			dns_records JSONB
		);
		CREATE INDEX IF NOT EXISTS %s ON %s(label, first_seen);
		CREATE INDEX IF NOT EXISTS %s ON %s(first_seen);
		`,
			pq.QuoteIdentifier(partitionTable(tld)),
			pq.QuoteIdentifier(partitionTable(tld)+"_label_idx"), pq.QuoteIdentifier(partitionTable(tld)),
			pq.QuoteIdentifier(partitionTable(tld)+"_first_seen_idx"), pq.QuoteIdentifier(partitionTable(tld)),
		)
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("failed to create partition for %s: %w", tld, err)
		}
	}
	return nil
}
