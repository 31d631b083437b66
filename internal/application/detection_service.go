package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/net/idna"

	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/domain/generation"
	"github.com/brandsec/similarity-engine/internal/domain/scoring"
	"github.com/brandsec/similarity-engine/internal/platform/metrics"
	"github.com/brandsec/similarity-engine/internal/ports"
)

// Per-metric result caps. The scorer ranks the full candidate set before
// these apply.
const (
	maxEditDistanceResults = 200
	maxHomographResults    = 100
)

// Options bounds the work a single detection request may do.
type Options struct {
	MaxVariations   int
	ScanLimitPerTLD int
	LengthTolerance int
}

// DetectionService orchestrates the variation generator, the similarity
// scorer, and candidate retrieval into the three detection flows.
type DetectionService struct {
	store     ports.RegistryStore
	generator *generation.Generator
	opts      Options
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewDetectionService creates a detection service with dependency injection.
func NewDetectionService(store ports.RegistryStore, generator *generation.Generator, opts Options, logger *slog.Logger, m *metrics.Metrics) *DetectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetectionService{
		store:     store,
		generator: generator,
		opts:      opts,
		logger:    logger,
		metrics:   m,
	}
}

// TyposquatParams selects the typosquat detection flow.
type TyposquatParams struct {
	Brand      domain.Brand
	Window     domain.TimeWindow
	Algorithms []string
	TLDs       []string
}

// VariationMatches reports one variation and the registry records it hit.
// Unmatched variations are included: absence of a registration is signal too.
type VariationMatches struct {
	Variation  string                `json:"variation"`
	IsOriginal bool                  `json:"is_original"`
	Matched    bool                  `json:"matched"`
	MatchCount int                   `json:"match_count"`
	Matches    []domain.DomainRecord `json:"matches,omitempty"`
}

// TyposquatResult is the output of the typosquat flow.
type TyposquatResult struct {
	Brand             domain.Brand
	TotalVariations   int
	MatchedVariations int
	TotalMatches      int
	AlgorithmsUsed    []string
	Variations        []VariationMatches
	Report            ports.PartitionReport
}

// Typosquat generates look-alike spellings of the brand and checks each one
// for registrations inside the window. The original brand label is always
// part of the lookup set and flagged as such in the output.
func (s *DetectionService) Typosquat(ctx context.Context, p TyposquatParams) (*TyposquatResult, error) {
	start := time.Now()

	gen := s.generator.Generate(p.Brand.Label, p.Algorithms, s.opts.MaxVariations)

	// Unicode variations (homoglyphs) are registered in punycode; look up
	// both forms and fold matches back onto the variation that produced
	// them.
	lookup := make([]string, 0, len(gen.Variations)*2)
	alias := make(map[string]string)
	for _, v := range gen.Variations {
		lookup = append(lookup, v)
		if ascii, err := idna.ToASCII(v); err == nil && ascii != v {
			lookup = append(lookup, ascii)
			alias[ascii] = v
		}
	}
	lookup = append(lookup, p.Brand.Label)

	records, report, err := s.store.FindExact(ctx, lookup, p.Window, p.TLDs)
	if err != nil {
		return nil, fmt.Errorf("exact-set lookup failed: %w", err)
	}
	s.observe("typosquatting", start, report)

	matched := make(map[string][]domain.DomainRecord)
	for _, rec := range records {
		key := rec.Label
		if v, ok := alias[key]; ok {
			key = v
		}
		matched[key] = append(matched[key], rec)
	}

	all := append([]string{p.Brand.Label}, gen.Variations...)
	sort.Strings(all)

	result := &TyposquatResult{
		Brand:          p.Brand,
		AlgorithmsUsed: gen.AlgorithmsUsed,
		Report:         report,
	}
	seen := make(map[string]struct{}, len(all))
	for _, v := range all {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}

		hits := matched[v]
		result.Variations = append(result.Variations, VariationMatches{
			Variation:  v,
			IsOriginal: v == p.Brand.Label,
			Matched:    len(hits) > 0,
			MatchCount: len(hits),
			Matches:    hits,
		})
		result.TotalVariations++
		if len(hits) > 0 {
			result.MatchedVariations++
			result.TotalMatches += len(hits)
		}
	}

	s.logger.Info("typosquat search completed",
		"brand", p.Brand.Label,
		"variations", result.TotalVariations,
		"matched", result.MatchedVariations,
		"failed_partitions", len(report.Failed),
	)
	return result, nil
}

// SimilarityParams selects the similarity detection flow.
type SimilarityParams struct {
	Brand                domain.Brand
	Window               domain.TimeWindow
	LevenshteinThreshold float64
	JaroWinklerThreshold float64
	HomographEnabled     bool
	TLDs                 []string
}

// SimilarityResult reports each metric's matches separately. The metrics are
// deliberately never merged into a combined ranking; threshold policy
// belongs to the caller.
type SimilarityResult struct {
	Brand          domain.Brand
	DomainsScanned int
	Levenshtein    []scoring.Match
	JaroWinkler    []scoring.Match
	Homograph      []scoring.Match
	Report         ports.PartitionReport
}

// Similarity scans recently observed domains close to the brand's length and
// scores them with each metric independently.
func (s *DetectionService) Similarity(ctx context.Context, p SimilarityParams) (*SimilarityResult, error) {
	start := time.Now()

	brandLen := len([]rune(p.Brand.Label))
	candidates, report, err := s.store.ScanByLength(ctx,
		brandLen-s.opts.LengthTolerance, brandLen+s.opts.LengthTolerance,
		p.Window, p.TLDs, s.opts.ScanLimitPerTLD)
	if err != nil {
		return nil, fmt.Errorf("length-bounded scan failed: %w", err)
	}
	s.observe("similarity", start, report)
	if s.metrics != nil {
		s.metrics.AddDomainsScanned(len(candidates))
	}

	result := &SimilarityResult{
		Brand:          p.Brand,
		DomainsScanned: len(candidates),
		Levenshtein:    scoring.LevenshteinSearch(p.Brand.Label, candidates, p.LevenshteinThreshold, maxEditDistanceResults),
		JaroWinkler:    scoring.JaroWinklerSearch(p.Brand.Label, candidates, p.JaroWinklerThreshold, maxEditDistanceResults),
		Report:         report,
	}
	if p.HomographEnabled {
		result.Homograph = scoring.HomographSearch(p.Brand.Label, candidates, scoring.DefaultMinSubstitutions, maxHomographResults)
	}

	s.logger.Info("similarity search completed",
		"brand", p.Brand.Label,
		"scanned", result.DomainsScanned,
		"levenshtein_matches", len(result.Levenshtein),
		"jaro_winkler_matches", len(result.JaroWinkler),
		"homograph_matches", len(result.Homograph),
		"failed_partitions", len(report.Failed),
	)
	return result, nil
}

// KeywordParams selects the keyword detection flow.
type KeywordParams struct {
	Keyword string
	Window  domain.TimeWindow
	TLDs    []string
	Limit   int
}

// KeywordResult is the output of the keyword flow.
type KeywordResult struct {
	Keyword string
	Matches []domain.DomainRecord
	Report  ports.PartitionReport
}

// Keyword finds domains containing the keyword. No generation or scoring is
// involved; this is the coarse, fast path.
func (s *DetectionService) Keyword(ctx context.Context, p KeywordParams) (*KeywordResult, error) {
	start := time.Now()

	records, report, err := s.store.FindKeyword(ctx, p.Keyword, p.Window, p.TLDs, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("keyword lookup failed: %w", err)
	}
	s.observe("keyword", start, report)

	s.logger.Info("keyword search completed",
		"keyword", p.Keyword,
		"matches", len(records),
		"failed_partitions", len(report.Failed),
	)
	return &KeywordResult{Keyword: p.Keyword, Matches: records, Report: report}, nil
}

// AlgorithmInfo describes one catalog entry.
type AlgorithmInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Algorithms returns the static catalog: generation algorithms first, then
// the similarity metrics.
func (s *DetectionService) Algorithms() []AlgorithmInfo {
	var out []AlgorithmInfo
	for _, alg := range generation.Catalog() {
		out = append(out, AlgorithmInfo{Name: alg.Name, Category: "typosquatting", Description: alg.Description})
	}
	for _, m := range scoring.Metrics() {
		out = append(out, AlgorithmInfo{Name: m.Name, Category: m.Category, Description: m.Description})
	}
	return out
}

// Healthy reports backing-store reachability.
func (s *DetectionService) Healthy(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

func (s *DetectionService) observe(mode string, start time.Time, report ports.PartitionReport) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSearch(mode, time.Since(start))
	if report.Degraded() {
		s.metrics.AddPartitionFailures(len(report.Failed))
	}
}
