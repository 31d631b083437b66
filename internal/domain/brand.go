package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// NormalizeBrand derives the comparison anchor from free-form input.
// The input must be in "domain.tld" form (a registrable domain, optionally
// with subdomains: "getir.com", "www.google.com.tr"). Anything without a
// recognizable label+public-suffix pair is rejected with ErrInvalidInput.
func NormalizeBrand(input string) (Brand, error) {
	host := strings.ToLower(strings.TrimSpace(input))
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return Brand{}, fmt.Errorf("%w: empty brand", ErrInvalidInput)
	}

	// Accept unicode input by mapping to its ASCII (punycode) form first;
	// public-suffix lookup operates on ASCII labels.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return Brand{}, fmt.Errorf("%w: %q is not in domain.tld form", ErrInvalidInput, input)
	}

	suffix, _ := publicsuffix.PublicSuffix(etld1)
	label := strings.TrimSuffix(etld1, "."+suffix)
	if label == "" || suffix == "" {
		return Brand{}, fmt.Errorf("%w: %q is not in domain.tld form", ErrInvalidInput, input)
	}

	return Brand{Label: label, Suffix: suffix, Raw: input}, nil
}
