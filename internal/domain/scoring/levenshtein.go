package scoring

import "github.com/brandsec/similarity-engine/internal/domain"

// LevenshteinSearch scores every candidate against the brand by normalized
// edit distance and keeps those at or above threshold. Results are sorted by
// similarity descending (ties keep retrieval order) and truncated to
// maxResults after sorting.
func LevenshteinSearch(brand string, candidates []domain.DomainRecord, threshold float64, maxResults int) []Match {
	matches := make([]Match, 0)

	for _, rec := range candidates {
		if rec.Label == "" {
			continue
		}

		var (
			distance   int
			similarity float64
		)
		if brand == rec.Label {
			// Identical strings are forced to exactly 1.0/0 so float noise
			// from the normalization can never demote an exact hit.
			similarity = 1.0
		} else {
			distance = LevenshteinDistance(brand, rec.Label)
			maxLen := len([]rune(brand))
			if l := len([]rune(rec.Label)); l > maxLen {
				maxLen = l
			}
			similarity = round4(1.0 - float64(distance)/float64(maxLen))
		}

		if similarity < threshold {
			continue
		}

		matches = append(matches, Match{
			Record: rec,
			Score: domain.ScoreResult{
				Metric:     MetricLevenshtein,
				Similarity: similarity,
				Distance:   distance,
			},
			IsExact: brand == rec.Label,
		})
	}

	return sortAndTruncate(matches, func(a, b Match) bool {
		return a.Score.Similarity > b.Score.Similarity
	}, maxResults)
}

// LevenshteinDistance calculates the minimum number of single-character
// edits (insertions, deletions, substitutions) between two strings.
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// DP table: matrix[i][j] = distance between r1[0:i] and r2[0:j].
	matrix := make([][]int, len(r1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(r2)+1)
	}
	for i := 0; i <= len(r1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(r2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(r1)][len(r2)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
