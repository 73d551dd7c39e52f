package suggest

import (
	"sort"
	"strings"
)

// minScore is the similarity cutoff below which a candidate is discarded
const minScore = 50

// DefaultLimit is the number of suggestions returned when no limit is
// configured
const DefaultLimit = 5

// scored is a transient per-query candidate; never persisted
type scored struct {
	name     string
	distance int
	score    float64
}

// Suggest ranks corpus entries by similarity to a misspelled query and
// returns at most limit names, best first, preserving the corpus casing.
//
// An exact match (after case-folding and trimming) short-circuits scoring
// and is returned alone. Substring containment in either direction counts
// as maximal similarity. Everything scoring below 50 is dropped. Ties on
// score are broken by ascending edit distance, then corpus order. The
// matcher does not deduplicate; the corpus is expected to be
// pre-deduplicated.
func Suggest(query string, corpus []string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(corpus) == 0 || limit <= 0 {
		return nil
	}

	results := make([]scored, 0, limit)
	for _, name := range corpus {
		n := strings.ToLower(strings.TrimSpace(name))

		if n == q {
			return []string{name}
		}

		if strings.Contains(n, q) || strings.Contains(q, n) {
			results = append(results, scored{name: name, distance: 0, score: 100})
			continue
		}

		dist := Distance(q, n)
		score := Similarity(q, n)
		if score >= minScore {
			results = append(results, scored{name: name, distance: dist, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].distance < results[j].distance
	})

	if len(results) > limit {
		results = results[:limit]
	}

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.name
	}
	return names
}
