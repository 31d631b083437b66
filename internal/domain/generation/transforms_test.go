package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOmission(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"etir", "gtir", "geir", "getr", "geti"},
		omission("getir"),
	)
}

func TestChangeOrder(t *testing.T) {
	got := changeOrder("google")
	assert.Contains(t, got, "ogogle")
	assert.Contains(t, got, "googel")
	assert.Len(t, got, 5)
}

func TestRepetition(t *testing.T) {
	got := repetition("ab")
	assert.Equal(t, []string{"aab", "abb"}, got)
}

func TestAddition(t *testing.T) {
	got := addition("ab")
	// 3 insertion points x 36 characters.
	assert.Len(t, got, 108)
	assert.Contains(t, got, "aab")
	assert.Contains(t, got, "ab1")
	assert.Contains(t, got, "xab")
}

func TestReplacementUsesKeyboardNeighbors(t *testing.T) {
	got := replacement("go")
	assert.Contains(t, got, "fo") // f is adjacent to g
	assert.Contains(t, got, "g0") // 0 is adjacent to o
	for _, v := range got {
		assert.NotEqual(t, "go", v)
	}
}

func TestVowelSwap(t *testing.T) {
	got := vowelSwap("google")
	assert.Contains(t, got, "guogle")
	assert.Contains(t, got, "googli")
	// Consonant-only labels produce nothing.
	assert.Empty(t, vowelSwap("xyz"))
}

func TestHomoglyph(t *testing.T) {
	got := homoglyph("google")
	assert.Contains(t, got, "g0ogle")
	assert.Contains(t, got, "go0gle")
	assert.Contains(t, got, "9oogle")
}

func TestBitsquattingOnlyValidCharacters(t *testing.T) {
	for _, v := range bitsquatting("paypal") {
		assert.Len(t, v, len("paypal"))
		for i := 0; i < len(v); i++ {
			assert.True(t, strings.IndexByte(labelCharset, v[i]) >= 0,
				"unexpected character %q in %q", v[i], v)
		}
	}
}

func TestSubdomainSkipsDashBoundaries(t *testing.T) {
	got := subdomain("pay-pal")
	for _, v := range got {
		assert.NotContains(t, v, "-.")
		assert.NotContains(t, v, ".-")
	}
	assert.Contains(t, subdomain("paypal"), "pay.pal")
}

func TestSingularPluralize(t *testing.T) {
	tests := []struct {
		label    string
		expected []string
	}{
		{"getir", []string{"getirs"}},
		{"boxes", []string{"box", "boxe"}},
		{"cars", []string{"car", "carses"}},
		{"fox", []string{"foxes"}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, singularPluralize(tt.label))
		})
	}
}

func TestNumeralSwap(t *testing.T) {
	got := numeralSwap("g00gle")
	assert.Contains(t, got, "go0gle")
	assert.Contains(t, got, "g0ogle")

	got = numeralSwap("one")
	assert.Contains(t, got, "1")
	assert.Contains(t, got, "0ne")
}

func TestWrongTLDNeverRepeatsSuffix(t *testing.T) {
	got := wrongTLD("getir")
	assert.Contains(t, got, "getircom")
	assert.Contains(t, got, "getir-com")
	for _, v := range wrongTLD("dotcom") {
		assert.False(t, strings.HasSuffix(v, "comcom"))
	}
}

func TestAddDash(t *testing.T) {
	assert.Equal(t, []string{"g-oo", "go-o"}, addDash("goo"))
}
