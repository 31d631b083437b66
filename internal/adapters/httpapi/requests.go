package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/domain/generation"
	"github.com/brandsec/similarity-engine/internal/domain/scoring"
)

// Request bounds. Windows are capped at a year; keyword search is capped to
// keep a single ILIKE sweep from dominating the store.
const (
	minDaysBack     = 1
	maxDaysBack     = 365
	defaultDaysBack = 7

	minKeywordLength = 3
	minKeywordLimit  = 1
	maxKeywordLimit  = 5000
	defaultLimit     = 500
)

// TyposquatRequest is the body for POST /search/typosquatting.
type TyposquatRequest struct {
	Brand      string   `json:"brand"`
	DaysBack   *int     `json:"daysBack,omitempty"`
	Algorithms []string `json:"algorithms,omitempty"`
	TLDs       []string `json:"tlds,omitempty"`

	// Populated by Validate.
	parsedBrand  domain.Brand
	parsedWindow domain.TimeWindow
}

// Validate checks and normalizes the request, applying defaults.
func (r *TyposquatRequest) Validate() error {
	brand, err := domain.NormalizeBrand(r.Brand)
	if err != nil {
		return err
	}
	r.parsedBrand = brand

	window, err := parseWindow(r.DaysBack)
	if err != nil {
		return err
	}
	r.parsedWindow = window

	for _, name := range r.Algorithms {
		if !generation.IsKnown(name) {
			return fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidInput, name)
		}
	}
	r.TLDs = normalizeTLDs(r.TLDs)
	return nil
}

// SimilarityRequest is the body for POST /search/similarity.
type SimilarityRequest struct {
	Brand                string   `json:"brand"`
	DaysBack             *int     `json:"daysBack,omitempty"`
	LevenshteinThreshold *float64 `json:"levenshteinThreshold,omitempty"`
	JaroWinklerThreshold *float64 `json:"jaroWinklerThreshold,omitempty"`
	HomographEnabled     *bool    `json:"homographEnabled,omitempty"`
	TLDs                 []string `json:"tlds,omitempty"`

	parsedBrand  domain.Brand
	parsedWindow domain.TimeWindow
}

func (r *SimilarityRequest) Validate() error {
	brand, err := domain.NormalizeBrand(r.Brand)
	if err != nil {
		return err
	}
	r.parsedBrand = brand

	window, err := parseWindow(r.DaysBack)
	if err != nil {
		return err
	}
	r.parsedWindow = window

	if r.LevenshteinThreshold == nil {
		r.LevenshteinThreshold = ptr(scoring.DefaultLevenshteinThreshold)
	}
	if r.JaroWinklerThreshold == nil {
		r.JaroWinklerThreshold = ptr(scoring.DefaultJaroWinklerThreshold)
	}
	for name, v := range map[string]float64{
		"levenshteinThreshold": *r.LevenshteinThreshold,
		"jaroWinklerThreshold": *r.JaroWinklerThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1", domain.ErrInvalidInput, name)
		}
	}
	if r.HomographEnabled == nil {
		r.HomographEnabled = ptr(true)
	}
	r.TLDs = normalizeTLDs(r.TLDs)
	return nil
}

// KeywordRequest is the body for POST /search/keyword.
type KeywordRequest struct {
	Keyword  string   `json:"keyword"`
	DaysBack *int     `json:"daysBack,omitempty"`
	TLDs     []string `json:"tlds,omitempty"`
	Limit    *int     `json:"limit,omitempty"`

	parsedWindow domain.TimeWindow
}

func (r *KeywordRequest) Validate() error {
	r.Keyword = strings.ToLower(strings.TrimSpace(r.Keyword))
	if len(r.Keyword) < minKeywordLength {
		return fmt.Errorf("%w: keyword must be at least %d characters", domain.ErrInvalidInput, minKeywordLength)
	}

	window, err := parseWindow(r.DaysBack)
	if err != nil {
		return err
	}
	r.parsedWindow = window

	if r.Limit == nil {
		r.Limit = ptr(defaultLimit)
	}
	if *r.Limit < minKeywordLimit || *r.Limit > maxKeywordLimit {
		return fmt.Errorf("%w: limit must be between %d and %d", domain.ErrInvalidInput, minKeywordLimit, maxKeywordLimit)
	}
	r.TLDs = normalizeTLDs(r.TLDs)
	return nil
}

func parseWindow(daysBack *int) (domain.TimeWindow, error) {
	days := defaultDaysBack
	if daysBack != nil {
		days = *daysBack
	}
	if days < minDaysBack || days > maxDaysBack {
		return domain.TimeWindow{}, fmt.Errorf("%w: daysBack must be between %d and %d", domain.ErrInvalidInput, minDaysBack, maxDaysBack)
	}
	return domain.WindowForDaysBack(time.Now().UTC(), days), nil
}

func normalizeTLDs(tlds []string) []string {
	if len(tlds) == 0 {
		return nil
	}
	out := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		tld = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tld, ".")))
		if tld != "" {
			out = append(out, tld)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
