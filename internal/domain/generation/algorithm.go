package generation

// AlgorithmAll is the sentinel selecting every registered algorithm.
const AlgorithmAll = "all"

// Algorithm pairs a transformation family with its metadata. Fn must be a
// deterministic, side-effect-free function of the label so every algorithm
// can be tested in isolation and requests are reproducible.
type Algorithm struct {
	Name        string
	Description string
	Fn          func(label string) []string
}

// algorithms is the static dispatch table. Selection by name is validated at
// the boundary against this table; there is no string-based dynamic dispatch
// anywhere else.
var algorithms = []Algorithm{
	{"omission", "Leave out a letter (google -> gogle)", omission},
	{"addition", "Insert a character at any position (google -> googles)", addition},
	{"change_order", "Swap adjacent letters (google -> ogogle)", changeOrder},
	{"repetition", "Repeat a character (google -> gooogle)", repetition},
	{"replacement", "Replace a character with a keyboard neighbor (google -> goagle)", replacement},
	{"double_replacement", "Replace two adjacent characters with keyboard neighbors", doubleReplacement},
	{"vowel_swap", "Swap vowels (google -> guugle)", vowelSwap},
	{"add_dash", "Insert a dash (google -> goo-gle)", addDash},
	{"homoglyph", "Use similar-looking characters (google -> g00gle)", homoglyph},
	{"bitsquatting", "Flip one bit per character (google -> coogle)", bitsquatting},
	{"subdomain", "Insert a dot to fake a subdomain (paypal -> pay.pal)", subdomain},
	{"singular_pluralize", "Add or remove a trailing 's' (google -> googles)", singularPluralize},
	{"numeral_swap", "Exchange digits and look-alike letters (one -> 1)", numeralSwap},
	{"wrong_tld", "Fuse a different TLD into the label (getir -> getircom)", wrongTLD},
	{"wrong_sld", "Fuse a second-level label into the brand (google -> googleco)", wrongSLD},
}

// Names returns every registered algorithm name in registration order.
func Names() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.Name
	}
	return names
}

// IsKnown reports whether name identifies a registered algorithm or the
// "all" sentinel.
func IsKnown(name string) bool {
	if name == AlgorithmAll {
		return true
	}
	for _, a := range algorithms {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Catalog returns the registered algorithms with their descriptions, for the
// algorithm listing endpoint.
func Catalog() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}
