package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsec/similarity-engine/internal/domain"
)

func TestJaroWinklerSimilarityBounds(t *testing.T) {
	tests := []struct {
		s1, s2 string
	}{
		{"google", "google"},
		{"google", "googel"},
		{"google", "zzz"},
		{"a", "b"},
		{"", "google"},
	}

	for _, tt := range tests {
		sim := JaroWinklerSimilarity(tt.s1, tt.s2)
		assert.GreaterOrEqual(t, sim, 0.0, "%q vs %q", tt.s1, tt.s2)
		assert.LessOrEqual(t, sim, 1.0, "%q vs %q", tt.s1, tt.s2)
	}

	assert.Equal(t, 1.0, JaroWinklerSimilarity("google", "google"))
	assert.Equal(t, 0.0, JaroWinklerSimilarity("", "google"))
}

func TestJaroWinklerRewardsSharedPrefix(t *testing.T) {
	// Both candidates differ from the brand by one transposition, but the
	// one keeping the brand's prefix must score higher.
	prefixKept := JaroWinklerSimilarity("google", "googel")
	prefixBroken := JaroWinklerSimilarity("google", "oggole")

	assert.Greater(t, prefixKept, prefixBroken)
}

func TestJaroWinklerSearchContract(t *testing.T) {
	candidates := []domain.DomainRecord{
		rec("zzzzzz"),
		rec("googel"),
		rec("google"),
	}

	matches := JaroWinklerSearch("google", candidates, 0.75, 10)

	require.Len(t, matches, 2)
	assert.Equal(t, "google", matches[0].Record.Label)
	assert.True(t, matches[0].IsExact)
	assert.Equal(t, 1.0, matches[0].Score.Similarity)
	assert.Equal(t, "googel", matches[1].Record.Label)
	assert.False(t, matches[1].IsExact)
}

func TestJaroWinklerSearchTruncatesAfterSorting(t *testing.T) {
	candidates := []domain.DomainRecord{rec("googel"), rec("google")}

	matches := JaroWinklerSearch("google", candidates, 0.0, 1)

	require.Len(t, matches, 1)
	assert.Equal(t, "google", matches[0].Record.Label)
}
