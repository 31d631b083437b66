package registry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsec/similarity-engine/internal/domain"
)

var testWindow = domain.TimeWindow{
	Start: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
}

func record(label string, firstSeen time.Time) domain.DomainRecord {
	return domain.DomainRecord{
		ID:        uuid.New(),
		Label:     label,
		FQDN:      label + ".example",
		FirstSeen: firstSeen,
		LastSeen:  firstSeen,
	}
}

func inWindow(label string) domain.DomainRecord {
	return record(label, testWindow.Start.Add(24*time.Hour))
}

func TestMemoryStoreFindExact(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("getir"), inWindow("geti"), inWindow("unrelated"))
	store.Add("net", inWindow("getir"))

	records, report, err := store.FindExact(context.Background(),
		[]string{"getir", "geti", "gtir"}, testWindow, nil)

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"com", "net"}, report.Queried)
	assert.False(t, report.Degraded())
}

func TestMemoryStoreWindowIsHalfOpen(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com",
		record("atstart", testWindow.Start),
		record("atend", testWindow.End),
		record("before", testWindow.Start.Add(-time.Second)),
	)

	records, _, err := store.FindExact(context.Background(),
		[]string{"atstart", "atend", "before"}, testWindow, nil)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "atstart", records[0].Label)
}

func TestMemoryStoreTLDFilter(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("paypal"))
	store.Add("zip", inWindow("paypal"))

	records, report, err := store.FindExact(context.Background(),
		[]string{"paypal"}, testWindow, []string{"zip"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "zip", records[0].TLD)
	assert.Equal(t, []string{"zip"}, report.Queried)
}

func TestMemoryStoreFindKeywordCumulativeLimit(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("google-login"), inWindow("mygoogle"), inWindow("other"))
	store.Add("net", inWindow("googleshop"))

	records, _, err := store.FindKeyword(context.Background(), "google", testWindow, nil, 2)

	require.NoError(t, err)
	assert.Len(t, records, 2)

	all, _, err := store.FindKeyword(context.Background(), "GOOGLE", testWindow, nil, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreScanByLengthTolerance(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com",
		inWindow("a"),         // 1, below the bound
		inWindow("ab"),        // 2, exactly brandLen-tolerance
		inWindow("getir"),     // 5
		inWindow("getirapp"),  // 8, exactly brandLen+tolerance
		inWindow("getirappp"), // 9, above the bound
	)

	brandLen, tolerance := 5, 3
	records, _, err := store.ScanByLength(context.Background(),
		brandLen-tolerance, brandLen+tolerance, testWindow, nil, 0)

	require.NoError(t, err)
	for _, rec := range records {
		diff := len(rec.Label) - brandLen
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, tolerance, "label %q outside tolerance", rec.Label)
	}
	// The bounds are inclusive: 2 and 8 are in, 1 and 9 are out.
	assert.Len(t, records, 3)
}

func TestMemoryStoreFindExactBatchingIsTransparent(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("paypal"), inWindow("payal"), inWindow("paypa1"))
	store.Add("net", inWindow("paypal"))

	labels := []string{"paypal", "payal", "paypa1", "paypall", "pespal"}

	baseline, baseReport, err := store.FindExact(context.Background(), labels, testWindow, nil)
	require.NoError(t, err)
	require.Len(t, baseline, 4)

	for _, size := range []int{1, 2, 3, 100} {
		store.SetBatchSize(size)
		records, report, err := store.FindExact(context.Background(), labels, testWindow, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, baseline, records, "batch size %d changed the result set", size)
		assert.Equal(t, baseReport, report, "batch size %d changed the report", size)
	}
}

func TestMemoryStoreScanByLengthPerPartitionCap(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("aaaaa"), inWindow("bbbbb"), inWindow("ccccc"))

	records, _, err := store.ScanByLength(context.Background(), 5, 5, testWindow, nil, 2)

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestMemoryStorePartialFailure(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("paypal"))
	store.Add("net", inWindow("paypal"))
	store.FailPartition("net")

	records, report, err := store.FindExact(context.Background(),
		[]string{"paypal"}, testWindow, nil)

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, report.Degraded())
	assert.Equal(t, []string{"net"}, report.Failed)
}

func TestMemoryStoreAllPartitionsFailed(t *testing.T) {
	store := NewMemoryStore()
	store.Add("com", inWindow("paypal"))
	store.FailPartition("com")

	_, _, err := store.FindExact(context.Background(), []string{"paypal"}, testWindow, nil)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
