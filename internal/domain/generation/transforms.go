package generation

import "strings"

// Each transform is a pure function from a normalized brand label to the
// candidate strings one transformation family can produce. Transforms never
// filter out the original label or de-duplicate: the generator owns both.

// omission drops one character at every position (getir -> etir, gtir, ...).
func omission(label string) []string {
	out := make([]string, 0, len(label))
	for i := range label {
		out = append(out, label[:i]+label[i+1:])
	}
	return out
}

// addition inserts one character from the restricted alphabet at every
// position, including both ends.
func addition(label string) []string {
	out := make([]string, 0, (len(label)+1)*len(insertionAlphabet))
	for i := 0; i <= len(label); i++ {
		for j := 0; j < len(insertionAlphabet); j++ {
			out = append(out, label[:i]+string(insertionAlphabet[j])+label[i:])
		}
	}
	return out
}

// changeOrder swaps every pair of adjacent characters (google -> ogogle).
func changeOrder(label string) []string {
	out := make([]string, 0, len(label))
	for i := 0; i+1 < len(label); i++ {
		out = append(out, label[:i]+string(label[i+1])+string(label[i])+label[i+2:])
	}
	return out
}

// repetition doubles each character in turn (google -> ggoogle, gooogle, ...).
func repetition(label string) []string {
	out := make([]string, 0, len(label))
	for i := range label {
		out = append(out, label[:i]+string(label[i])+label[i:])
	}
	return out
}

// replacement substitutes each character with its keyboard neighbors.
func replacement(label string) []string {
	var out []string
	for i := range label {
		adjacent, ok := keyboardAdjacent[label[i]]
		if !ok {
			continue
		}
		for j := 0; j < len(adjacent); j++ {
			out = append(out, label[:i]+string(adjacent[j])+label[i+1:])
		}
	}
	return out
}

// doubleReplacement substitutes two consecutive characters with keyboard
// neighbors at once, modeling a hand shifted one key over.
func doubleReplacement(label string) []string {
	var out []string
	for i := 0; i+1 < len(label); i++ {
		first, ok1 := keyboardAdjacent[label[i]]
		second, ok2 := keyboardAdjacent[label[i+1]]
		if !ok1 || !ok2 {
			continue
		}
		for j := 0; j < len(first); j++ {
			for k := 0; k < len(second); k++ {
				out = append(out, label[:i]+string(first[j])+string(second[k])+label[i+2:])
			}
		}
	}
	return out
}

// vowelSwap replaces each vowel with every other vowel (google -> guugle).
func vowelSwap(label string) []string {
	var out []string
	for i := range label {
		if !strings.ContainsRune(vowels, rune(label[i])) {
			continue
		}
		for _, v := range vowels {
			out = append(out, label[:i]+string(v)+label[i+1:])
		}
	}
	return out
}

// addDash hyphenates the label at every internal position (getir -> ge-tir).
func addDash(label string) []string {
	out := make([]string, 0, len(label))
	for i := 1; i < len(label); i++ {
		out = append(out, label[:i]+"-"+label[i:])
	}
	return out
}

// homoglyph substitutes each character with its visually similar
// counterparts from the glyph table (google -> g00gle, gооgle).
func homoglyph(label string) []string {
	var out []string
	for i := range label {
		for _, g := range glyphs[label[i]] {
			out = append(out, label[:i]+g+label[i+1:])
		}
	}
	return out
}

// bitsquatting flips every bit of every character and keeps the results that
// are still valid label characters. Targets hardware bit errors in cached
// DNS names.
func bitsquatting(label string) []string {
	masks := []byte{1, 2, 4, 8, 16, 32, 64, 128}
	var out []string
	for i := range label {
		for _, mask := range masks {
			b := label[i] ^ mask
			if strings.IndexByte(labelCharset, b) >= 0 {
				out = append(out, label[:i]+string(b)+label[i+1:])
			}
		}
	}
	return out
}

// subdomain inserts a dot at internal positions, turning part of the label
// into an apparent subdomain (paypal -> pay.pal). Positions next to an
// existing dot or dash are skipped since those never form a valid label.
func subdomain(label string) []string {
	var out []string
	for i := 1; i < len(label)-1; i++ {
		if label[i] == '-' || label[i] == '.' || label[i-1] == '-' || label[i-1] == '.' {
			continue
		}
		out = append(out, label[:i]+"."+label[i:])
	}
	return out
}

// singularPluralize toggles a trailing "s"/"es" (getir -> getirs).
func singularPluralize(label string) []string {
	switch {
	case strings.HasSuffix(label, "es"):
		return []string{label[:len(label)-2], label[:len(label)-1]}
	case strings.HasSuffix(label, "s"):
		return []string{label[:len(label)-1], label + "es"}
	default:
		suffix := "s"
		if n := len(label); n > 0 && (label[n-1] == 'x' || label[n-1] == 'z') {
			suffix = "es"
		}
		return []string{label + suffix}
	}
}

// numeralSwap exchanges digits and the letters that resemble them, one
// position at a time, and swaps spelled-out numbers for digits (one2 -> 12).
func numeralSwap(label string) []string {
	var out []string
	for i := range label {
		if sub, ok := numeralSwaps[label[i]]; ok {
			out = append(out, label[:i]+string(sub)+label[i+1:])
		}
	}
	for word, digit := range numberWords {
		if strings.Contains(label, word) {
			out = append(out, strings.Replace(label, word, digit, 1))
		}
		if strings.Contains(label, digit) {
			out = append(out, strings.Replace(label, digit, word, 1))
		}
	}
	return out
}

// wrongTLD fuses a different TLD into the label itself, with and without a
// dash (getir -> getircom, getir-com).
func wrongTLD(label string) []string {
	var out []string
	for _, tld := range fusedTLDs {
		if strings.HasSuffix(label, tld) {
			continue
		}
		out = append(out, label+tld, label+"-"+tld)
	}
	return out
}

// wrongSLD fuses a second-level label ("co" of "co.uk") into the brand.
func wrongSLD(label string) []string {
	var out []string
	for _, sld := range fusedSLDs {
		if strings.HasSuffix(label, sld) {
			continue
		}
		out = append(out, label+sld)
	}
	return out
}
