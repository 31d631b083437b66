package generation

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSingleAlgorithm(t *testing.T) {
	gen := NewGenerator(nil)

	res := gen.Generate("getir", []string{"omission"}, 0)

	assert.Equal(t, []string{"omission"}, res.AlgorithmsUsed)
	assert.ElementsMatch(t,
		[]string{"etir", "gtir", "geir", "getr", "geti"},
		res.Variations,
	)
	// Variations is sorted; PerAlgorithm keeps generation order.
	assert.ElementsMatch(t, res.Variations, res.PerAlgorithm["omission"])
	assert.False(t, res.Truncated)
}

func TestGenerateAllNeverEmitsOriginal(t *testing.T) {
	gen := NewGenerator(nil)

	for _, label := range []string{"getir", "google", "paypal", "a"} {
		res := gen.Generate(label, nil, 0)
		assert.NotContains(t, res.Variations, label)
		for alg, variants := range res.PerAlgorithm {
			assert.NotContains(t, variants, label, "algorithm %s leaked the original", alg)
		}
	}
}

func TestGenerateAllSentinel(t *testing.T) {
	gen := NewGenerator(nil)

	explicit := gen.Generate("paypal", []string{AlgorithmAll}, 0)
	implicit := gen.Generate("paypal", nil, 0)

	assert.Equal(t, implicit.AlgorithmsUsed, explicit.AlgorithmsUsed)
	assert.Equal(t, implicit.Variations, explicit.Variations)
	assert.Equal(t, Names(), implicit.AlgorithmsUsed)
}

func TestGenerateLimitTruncatesUnionDeterministically(t *testing.T) {
	gen := NewGenerator(nil)

	full := gen.Generate("google", nil, 0)
	require.Greater(t, len(full.Variations), 20)

	capped := gen.Generate("google", nil, 20)
	assert.Len(t, capped.Variations, 20)
	assert.True(t, capped.Truncated)

	// Truncation applies to the sorted union, so the capped run is a prefix
	// of the full run and stable across invocations.
	assert.True(t, sort.StringsAreSorted(capped.Variations))
	assert.Equal(t, full.Variations[:20], capped.Variations)
	assert.Equal(t, capped.Variations, gen.Generate("google", nil, 20).Variations)

	// Per-algorithm output is not starved by the cap.
	assert.NotEmpty(t, capped.PerAlgorithm["wrong_tld"])
}

func TestGenerateDeduplicatesAcrossAlgorithms(t *testing.T) {
	gen := NewGenerator(nil)

	// homoglyph and numeral_swap both produce g0ogle.
	res := gen.Generate("google", []string{"homoglyph", "numeral_swap"}, 0)

	count := 0
	for _, v := range res.Variations {
		if v == "g0ogle" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, res.PerAlgorithm["homoglyph"], "g0ogle")
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := NewGenerator(nil)

	first := gen.Generate("getir", nil, 100)
	second := gen.Generate("getir", nil, 100)
	assert.Equal(t, first.Variations, second.Variations)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("omission"))
	assert.True(t, IsKnown(AlgorithmAll))
	assert.False(t, IsKnown("quantum_squint"))
}

func TestCatalogMatchesRegistry(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, len(Names()))
	for _, alg := range catalog {
		assert.NotEmpty(t, alg.Name)
		assert.NotEmpty(t, alg.Description)
		assert.NotNil(t, alg.Fn)
	}
}
