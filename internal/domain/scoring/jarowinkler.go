package scoring

import "github.com/brandsec/similarity-engine/internal/domain"

// winklerPrefixScale is the standard Winkler boost factor; at most four
// leading characters contribute to the prefix bonus.
const (
	winklerPrefixScale = 0.1
	winklerMaxPrefix   = 4
)

// JaroWinklerSearch scores every candidate against the brand with the
// prefix-weighted Jaro-Winkler metric and keeps those at or above threshold.
// Same sort/truncate contract as LevenshteinSearch.
func JaroWinklerSearch(brand string, candidates []domain.DomainRecord, threshold float64, maxResults int) []Match {
	matches := make([]Match, 0)

	for _, rec := range candidates {
		if rec.Label == "" {
			continue
		}

		similarity := 1.0
		if brand != rec.Label {
			similarity = round4(JaroWinklerSimilarity(brand, rec.Label))
		}

		if similarity < threshold {
			continue
		}

		matches = append(matches, Match{
			Record: rec,
			Score: domain.ScoreResult{
				Metric:     MetricJaroWinkler,
				Similarity: similarity,
			},
			IsExact: brand == rec.Label,
		})
	}

	return sortAndTruncate(matches, func(a, b Match) bool {
		return a.Score.Similarity > b.Score.Similarity
	}, maxResults)
}

// JaroWinklerSimilarity returns the Jaro-Winkler similarity of two strings
// in [0,1]. Typosquats overwhelmingly keep the brand's leading characters,
// which is exactly what the Winkler prefix bonus rewards.
func JaroWinklerSimilarity(s1, s2 string) float64 {
	jaro := jaroSimilarity(s1, s2)
	if jaro == 0 {
		return 0
	}

	r1, r2 := []rune(s1), []rune(s2)
	prefix := 0
	for i := 0; i < len(r1) && i < len(r2) && i < winklerMaxPrefix; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*winklerPrefixScale*(1-jaro)
}

func jaroSimilarity(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}
	if string(r1) == string(r2) {
		return 1
	}

	window := len(r1)
	if len(r2) > window {
		window = len(r2)
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matched1 := make([]bool, len(r1))
	matched2 := make([]bool, len(r2))

	matchCount := 0
	for i := range r1 {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(r2) {
			hi = len(r2)
		}
		for j := lo; j < hi; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matchCount++
			break
		}
	}

	if matchCount == 0 {
		return 0
	}

	// Count transpositions among the matched characters.
	transpositions := 0
	j := 0
	for i := range r1 {
		if !matched1[i] {
			continue
		}
		for !matched2[j] {
			j++
		}
		if r1[i] != r2[j] {
			transpositions++
		}
		j++
	}
	transpositions /= 2

	m := float64(matchCount)
	return (m/float64(len(r1)) + m/float64(len(r2)) + (m-float64(transpositions))/m) / 3
}
