package httpapi

import (
	"time"

	"github.com/brandsec/similarity-engine/internal/application"
	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/domain/scoring"
	"github.com/brandsec/similarity-engine/internal/ports"
)

// RecordResponse is the wire form of one registry record.
type RecordResponse struct {
	ID         string            `json:"id"`
	Domain     string            `json:"domain"`
	FQDN       string            `json:"fqdn"`
	TLD        string            `json:"tld"`
	FirstSeen  time.Time         `json:"firstSeen"`
	LastSeen   time.Time         `json:"lastSeen"`
	DNSRecords map[string]string `json:"dnsRecords,omitempty"`
}

func toRecord(rec domain.DomainRecord) RecordResponse {
	return RecordResponse{
		ID:         rec.ID.String(),
		Domain:     rec.Label,
		FQDN:       rec.FQDN,
		TLD:        rec.TLD,
		FirstSeen:  rec.FirstSeen,
		LastSeen:   rec.LastSeen,
		DNSRecords: rec.DNSRecords,
	}
}

func toRecords(recs []domain.DomainRecord) []RecordResponse {
	out := make([]RecordResponse, len(recs))
	for i, rec := range recs {
		out[i] = toRecord(rec)
	}
	return out
}

// SubstitutionResponse is one confusable-character swap.
type SubstitutionResponse struct {
	Position   int    `json:"position"`
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
}

// ScoredMatchResponse is one scored candidate under a single metric.
type ScoredMatchResponse struct {
	Record        RecordResponse         `json:"record"`
	Similarity    float64                `json:"similarity"`
	Distance      *int                   `json:"distance,omitempty"`
	Substitutions []SubstitutionResponse `json:"substitutions,omitempty"`
	RiskLevel     string                 `json:"riskLevel,omitempty"`
	IsExact       bool                   `json:"isExact"`
}

func toScoredMatches(matches []scoring.Match) []ScoredMatchResponse {
	out := make([]ScoredMatchResponse, len(matches))
	for i, m := range matches {
		sm := ScoredMatchResponse{
			Record:     toRecord(m.Record),
			Similarity: m.Score.Similarity,
			RiskLevel:  m.Score.RiskLevel,
			IsExact:    m.IsExact,
		}
		if m.Score.Metric == scoring.MetricLevenshtein {
			d := m.Score.Distance
			sm.Distance = &d
		}
		for _, sub := range m.Score.Substitutions {
			sm.Substitutions = append(sm.Substitutions, SubstitutionResponse(sub))
		}
		out[i] = sm
	}
	return out
}

// Meta carries request-wide metadata common to every search response.
type Meta struct {
	ProcessingTimeSeconds float64  `json:"processingTimeSeconds"`
	PartitionsQueried     int      `json:"partitionsQueried"`
	FailedPartitions      []string `json:"failedPartitions,omitempty"`
}

func toMeta(start time.Time, report ports.PartitionReport) Meta {
	return Meta{
		ProcessingTimeSeconds: time.Since(start).Seconds(),
		PartitionsQueried:     len(report.Queried),
		FailedPartitions:      report.Failed,
	}
}

// SearchParams echoes the effective parameters a search ran with, after
// defaults were applied. Clients rely on this to see what a request resolved
// to, not what they sent.
type SearchParams struct {
	WindowStart          time.Time `json:"windowStart"`
	WindowEnd            time.Time `json:"windowEnd"`
	TLDs                 []string  `json:"tlds,omitempty"`
	Algorithms           []string  `json:"algorithms,omitempty"`
	LevenshteinThreshold *float64  `json:"levenshteinThreshold,omitempty"`
	JaroWinklerThreshold *float64  `json:"jaroWinklerThreshold,omitempty"`
	HomographEnabled     *bool     `json:"homographEnabled,omitempty"`
	Limit                *int      `json:"limit,omitempty"`
}

// VariationResponse is one generated variation and its registry hits.
type VariationResponse struct {
	Variation  string           `json:"variation"`
	IsOriginal bool             `json:"isOriginal"`
	Matched    bool             `json:"matched"`
	MatchCount int              `json:"matchCount"`
	Matches    []RecordResponse `json:"matches,omitempty"`
}

// TyposquatResponse is the body for POST /search/typosquatting.
type TyposquatResponse struct {
	Brand             string              `json:"brand"`
	TotalVariations   int                 `json:"totalVariations"`
	MatchedVariations int                 `json:"matchedVariations"`
	TotalMatches      int                 `json:"totalMatches"`
	AlgorithmsUsed    []string            `json:"algorithmsUsed"`
	Variations        []VariationResponse `json:"variations"`
	SearchParams      SearchParams        `json:"searchParams"`
	Meta              Meta                `json:"meta"`
}

func toTyposquatResponse(res *application.TyposquatResult, req *TyposquatRequest, start time.Time) TyposquatResponse {
	out := TyposquatResponse{
		Brand:             res.Brand.Label + "." + res.Brand.Suffix,
		TotalVariations:   res.TotalVariations,
		MatchedVariations: res.MatchedVariations,
		TotalMatches:      res.TotalMatches,
		AlgorithmsUsed:    res.AlgorithmsUsed,
		Variations:        make([]VariationResponse, len(res.Variations)),
		SearchParams: SearchParams{
			WindowStart: req.parsedWindow.Start,
			WindowEnd:   req.parsedWindow.End,
			TLDs:        req.TLDs,
			Algorithms:  req.Algorithms,
		},
		Meta: toMeta(start, res.Report),
	}
	for i, v := range res.Variations {
		vr := VariationResponse{
			Variation:  v.Variation,
			IsOriginal: v.IsOriginal,
			Matched:    v.Matched,
			MatchCount: v.MatchCount,
		}
		if v.Matched {
			vr.Matches = toRecords(v.Matches)
		}
		out.Variations[i] = vr
	}
	return out
}

// SimilaritySummary aggregates per-metric match counts.
type SimilaritySummary struct {
	LevenshteinMatches int `json:"levenshteinMatches"`
	JaroWinklerMatches int `json:"jaroWinklerMatches"`
	HomographMatches   int `json:"homographMatches"`
}

// SimilarityResults holds each metric's list separately. The metrics are
// never merged into one ranking.
type SimilarityResults struct {
	Levenshtein []ScoredMatchResponse `json:"levenshtein"`
	JaroWinkler []ScoredMatchResponse `json:"jaroWinkler"`
	Homograph   []ScoredMatchResponse `json:"homograph,omitempty"`
}

// SimilarityResponse is the body for POST /search/similarity.
type SimilarityResponse struct {
	Brand          string            `json:"brand"`
	DomainsScanned int               `json:"domainsScanned"`
	Summary        SimilaritySummary `json:"summary"`
	Results        SimilarityResults `json:"results"`
	SearchParams   SearchParams      `json:"searchParams"`
	Meta           Meta              `json:"meta"`
}

func toSimilarityResponse(res *application.SimilarityResult, req *SimilarityRequest, start time.Time) SimilarityResponse {
	out := SimilarityResponse{
		Brand:          res.Brand.Label + "." + res.Brand.Suffix,
		DomainsScanned: res.DomainsScanned,
		Summary: SimilaritySummary{
			LevenshteinMatches: len(res.Levenshtein),
			JaroWinklerMatches: len(res.JaroWinkler),
			HomographMatches:   len(res.Homograph),
		},
		Results: SimilarityResults{
			Levenshtein: toScoredMatches(res.Levenshtein),
			JaroWinkler: toScoredMatches(res.JaroWinkler),
		},
		SearchParams: SearchParams{
			WindowStart:          req.parsedWindow.Start,
			WindowEnd:            req.parsedWindow.End,
			TLDs:                 req.TLDs,
			LevenshteinThreshold: req.LevenshteinThreshold,
			JaroWinklerThreshold: req.JaroWinklerThreshold,
			HomographEnabled:     req.HomographEnabled,
		},
		Meta: toMeta(start, res.Report),
	}
	if *req.HomographEnabled {
		out.Results.Homograph = toScoredMatches(res.Homograph)
	}
	return out
}

// KeywordResponse is the body for POST /search/keyword.
type KeywordResponse struct {
	Keyword      string           `json:"keyword"`
	TotalMatches int              `json:"totalMatches"`
	Matches      []RecordResponse `json:"matches"`
	SearchParams SearchParams     `json:"searchParams"`
	Meta         Meta             `json:"meta"`
}

func toKeywordResponse(res *application.KeywordResult, req *KeywordRequest, start time.Time) KeywordResponse {
	return KeywordResponse{
		Keyword:      res.Keyword,
		TotalMatches: len(res.Matches),
		Matches:      toRecords(res.Matches),
		SearchParams: SearchParams{
			WindowStart: req.parsedWindow.Start,
			WindowEnd:   req.parsedWindow.End,
			TLDs:        req.TLDs,
			Limit:       req.Limit,
		},
		Meta: toMeta(start, res.Report),
	}
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
