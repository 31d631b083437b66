// Package scoring implements the independent similarity metrics used to
// compare a brand label against candidate domains: Levenshtein edit
// distance, Jaro-Winkler prefix-weighted similarity, and homograph
// substitution detection. Each search stands alone; results are never merged
// into a combined score.
package scoring

import (
	"math"
	"sort"

	"github.com/brandsec/similarity-engine/internal/domain"
)

// Metric names reported in results and the algorithm catalog.
const (
	MetricLevenshtein = "levenshtein"
	MetricJaroWinkler = "jaro_winkler"
	MetricHomograph   = "homograph"
)

// Default thresholds, tuned against observed registration feeds.
const (
	DefaultLevenshteinThreshold = 0.70
	DefaultJaroWinklerThreshold = 0.75
	DefaultMinSubstitutions     = 1
)

// Match pairs a registry record with its score under one metric.
type Match struct {
	Record  domain.DomainRecord `json:"record"`
	Score   domain.ScoreResult  `json:"score"`
	IsExact bool                `json:"is_exact"`
}

// MetricInfo describes one similarity metric for the catalog endpoint.
type MetricInfo struct {
	Name        string
	Category    string
	Description string
}

// Metrics returns the catalog entries for the similarity metrics.
func Metrics() []MetricInfo {
	return []MetricInfo{
		{MetricLevenshtein, "similarity", "Edit distance (insertions, deletions, substitutions). Lower distance = more similar."},
		{MetricJaroWinkler, "similarity", "Similarity for short strings, favors matching prefixes. Higher score = more similar."},
		{MetricHomograph, "detection", "Detects IDN homograph attacks using similar-looking characters."},
	}
}

// round4 keeps similarity values readable in responses without drifting
// comparisons at the threshold boundary.
func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// sortAndTruncate orders matches by the metric's own ranking, then cuts to
// maxResults. Truncation always happens after sorting: the full eligible set
// must be ranked before anything is dropped. The sort is stable so ties keep
// retrieval order.
func sortAndTruncate(matches []Match, less func(a, b Match) bool, maxResults int) []Match {
	sort.SliceStable(matches, func(i, j int) bool { return less(matches[i], matches[j]) })
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}
