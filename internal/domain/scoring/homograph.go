package scoring

import "github.com/brandsec/similarity-engine/internal/domain"

// confusables maps each Latin character to the look-alikes an attacker can
// substitute for it: Cyrillic and Greek twins, diacritics, digits, and
// symbols. Keyed by the brand's character; a candidate character matches a
// position when it is either identical or listed here.
var confusables = map[rune][]rune{
	'a': {'а', 'ą', 'ä', 'à', 'á', 'â', 'ã', '@', '4', 'α'},
	'b': {'ḅ', 'ß', '6', '8', 'β'},
	'c': {'с', 'ç', '(', '¢', 'ċ'},
	'd': {'ԁ', 'ḍ', 'đ', 'ð'},
	'e': {'е', 'ė', 'ę', 'è', 'é', 'ê', 'ë', '3', '€', 'ε'},
	'g': {'ġ', 'ğ', '9', 'ģ'},
	'h': {'һ', 'ḥ', 'ħ'},
	'i': {'і', 'ı', 'ì', 'í', 'î', 'ï', '1', 'l', '!', '|', 'ι'},
	'j': {'ј', 'ĵ'},
	'k': {'κ', 'ḳ', 'ķ'},
	'l': {'ł', '1', 'i', '|', 'ι'},
	'm': {'ṃ', 'м'},
	'n': {'ń', 'ñ', 'ṇ', 'η', 'п'},
	'o': {'о', 'ο', 'ö', 'ò', 'ó', 'ô', 'õ', '0', 'ø', 'θ'},
	'p': {'р', 'ρ', 'þ'},
	'q': {'ԛ', 'զ'},
	'r': {'г', 'ṛ', 'ŗ'},
	's': {'ѕ', 'ś', 'ş', '$', '5', 'ș'},
	't': {'т', 'ṭ', '7', '+', 'τ'},
	'u': {'υ', 'ü', 'ù', 'ú', 'û', 'μ'},
	'v': {'ν', 'ѵ', 'ư'},
	'w': {'ω', 'ẃ', 'ẁ', 'ŵ', 'ш'},
	'x': {'х', 'χ', '×'},
	'y': {'у', 'ý', 'ÿ', 'γ'},
	'z': {'ź', 'ż', '2', 'ž'},
}

// HomographSearch finds candidates that are homograph renditions of the
// brand: equal length, and every differing position explained by the
// confusable table. Matches with fewer than minSubstitutions swaps are
// dropped, so an exact copy of the brand never appears here. Results sort
// ascending by substitution count — the fewest swaps make the most
// deceptive fake — and truncate to maxResults after sorting.
func HomographSearch(brand string, candidates []domain.DomainRecord, minSubstitutions, maxResults int) []Match {
	if minSubstitutions < 1 {
		minSubstitutions = DefaultMinSubstitutions
	}

	brandRunes := []rune(brand)
	matches := make([]Match, 0)

	for _, rec := range candidates {
		if rec.Label == "" {
			continue
		}

		subs, ok := DetectHomograph(brandRunes, []rune(rec.Label))
		if !ok || len(subs) < minSubstitutions {
			continue
		}

		matches = append(matches, Match{
			Record: rec,
			Score: domain.ScoreResult{
				Metric:        MetricHomograph,
				Similarity:    round4(1.0 - float64(len(subs))/float64(len(brandRunes))),
				Substitutions: subs,
				RiskLevel:     domain.HomographRiskLevel(len(subs), len(brandRunes)),
			},
		})
	}

	return sortAndTruncate(matches, func(a, b Match) bool {
		return len(a.Score.Substitutions) < len(b.Score.Substitutions)
	}, maxResults)
}

// DetectHomograph compares brand and candidate position by position. The
// verdict is all-or-nothing: one position that neither matches exactly nor
// appears in the confusable table disqualifies the whole candidate, and a
// length mismatch is never a homograph regardless of how close the lengths
// are. Returns the substitutions found and whether the candidate qualifies.
func DetectHomograph(brand, candidate []rune) ([]domain.Substitution, bool) {
	if len(brand) != len(candidate) {
		return nil, false
	}

	var subs []domain.Substitution
	for i := range brand {
		if brand[i] == candidate[i] {
			continue
		}
		if !isConfusable(brand[i], candidate[i]) {
			return nil, false
		}
		subs = append(subs, domain.Substitution{
			Position:   i,
			Original:   string(brand[i]),
			Substitute: string(candidate[i]),
		})
	}

	// Zero substitutions means an identical string, not a homograph.
	return subs, len(subs) > 0
}

func isConfusable(original, substitute rune) bool {
	for _, r := range confusables[original] {
		if r == substitute {
			return true
		}
	}
	return false
}
