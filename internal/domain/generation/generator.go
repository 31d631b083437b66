package generation

import (
	"log/slog"
	"sort"
)

// Result holds the output of one generation run.
type Result struct {
	// Variations is the de-duplicated union of all per-algorithm output,
	// sorted lexicographically and capped at the requested limit. It never
	// contains the input label itself.
	Variations []string

	// PerAlgorithm maps each algorithm that ran to the variations it
	// produced (pre-union, post-dedup within the algorithm).
	PerAlgorithm map[string][]string

	// AlgorithmsUsed lists the algorithms that ran, in registration order.
	AlgorithmsUsed []string

	// Truncated is set when the union exceeded the limit and was cut.
	Truncated bool
}

// Generator produces look-alike spellings of a brand label. It is pure
// computation over strings: no network, no storage.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a generator. A nil logger falls back to slog.Default.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Generate runs the selected algorithms over a normalized brand label.
// selected may be empty or contain "all", which runs everything registered.
// A failing algorithm is logged and skipped; the remaining algorithms still
// run. The unioned set is capped at limit by lexicographic truncation, so
// results are stable across runs and no single algorithm starves the others
// before the union is formed.
func (g *Generator) Generate(label string, selected []string, limit int) Result {
	wanted := selectionSet(selected)

	res := Result{PerAlgorithm: make(map[string][]string)}
	union := make(map[string]struct{})

	for _, alg := range algorithms {
		if wanted != nil {
			if _, ok := wanted[alg.Name]; !ok {
				continue
			}
		}

		variants := g.run(alg, label)

		seen := make(map[string]struct{}, len(variants))
		kept := make([]string, 0, len(variants))
		for _, v := range variants {
			// The unmodified label is never a variation; the orchestrator
			// adds the original explicitly when it wants it.
			if v == "" || v == label {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			kept = append(kept, v)
			union[v] = struct{}{}
		}

		res.PerAlgorithm[alg.Name] = kept
		res.AlgorithmsUsed = append(res.AlgorithmsUsed, alg.Name)
	}

	res.Variations = make([]string, 0, len(union))
	for v := range union {
		res.Variations = append(res.Variations, v)
	}
	sort.Strings(res.Variations)

	if limit > 0 && len(res.Variations) > limit {
		res.Variations = res.Variations[:limit]
		res.Truncated = true
	}

	return res
}

// run executes one algorithm with panic isolation. Transformation code works
// on caller-supplied strings; a bad input must cost us one algorithm's
// output, never the request.
func (g *Generator) run(alg Algorithm, label string) (variants []string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("variation algorithm failed",
				"algorithm", alg.Name,
				"label", label,
				"panic", r,
			)
			variants = nil
		}
	}()
	return alg.Fn(label)
}

// selectionSet converts the caller's algorithm list into a lookup set.
// A nil return means "run everything".
func selectionSet(selected []string) map[string]struct{} {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		if name == AlgorithmAll {
			return nil
		}
		set[name] = struct{}{}
	}
	return set
}
