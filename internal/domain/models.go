package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainRecord is an observed-domain entry from the external registry.
// Records are retrieved, never written, so this type carries no update methods.
type DomainRecord struct {
	ID         uuid.UUID         `json:"id"`
	Label      string            `json:"domain"`
	FQDN       string            `json:"fqdn"`
	TLD        string            `json:"tld"`
	FirstSeen  time.Time         `json:"first_seen"`
	LastSeen   time.Time         `json:"last_seen"`
	DNSRecords map[string]string `json:"dns_records,omitempty"`
}

// Brand is a normalized domain label used as the comparison anchor for a
// request. It is derived once at the boundary from free-form input and
// assumed valid everywhere below it.
type Brand struct {
	Label  string `json:"label"`  // e.g. "getir"
	Suffix string `json:"suffix"` // e.g. "com", "com.tr"
	Raw    string `json:"raw"`    // original user input
}

// Variation is a single generated look-alike of a brand label, tagged with
// the algorithm that produced it. The same string may be produced by several
// algorithms; de-duplication happens on the unioned set, not here.
type Variation struct {
	Value     string `json:"variation"`
	Algorithm string `json:"algorithm"`
}

// TimeWindow is a half-open [Start, End) interval over first-seen timestamps.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WindowForDaysBack computes the search window the way the service has always
// defined it: the end is the start of tomorrow (so today's observations are
// included), the start is daysBack days earlier.
func WindowForDaysBack(now time.Time, daysBack int) TimeWindow {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1)
	return TimeWindow{Start: end.AddDate(0, 0, -daysBack), End: end}
}

// Substitution records one confusable-character swap found by the homograph
// detector: the brand's character at Position was replaced by Substitute.
type Substitution struct {
	Position   int    `json:"position"`
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
}

// ScoreResult is the output of one similarity metric for one (brand,
// candidate) pair. Distance is only meaningful for edit-distance metrics;
// Substitutions only for the homograph metric.
type ScoreResult struct {
	Metric        string         `json:"metric"`
	Similarity    float64        `json:"similarity"` // always in [0,1]
	Distance      int            `json:"distance,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	RiskLevel     string         `json:"risk_level,omitempty"`
}

// HomographRiskLevel converts a substitution count to a categorical level.
// Fewer substitutions means a more convincing fake, so a single substitution
// is the most dangerous case.
func HomographRiskLevel(substitutions, brandLength int) string {
	switch {
	case substitutions == 1:
		return "critical"
	case substitutions <= 2:
		return "high"
	case substitutions <= brandLength/2:
		return "medium"
	default:
		return "low"
	}
}
