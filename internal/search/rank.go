package search

import (
	"fmt"
	"sort"

	"github.com/notevault/vaultmcp/internal/store"
)

// Options controls a ranking pass. Limit and Threshold are assumed already
// clamped by argument validation.
type Options struct {
	Limit     int
	Threshold float64
	// Exclude is omitted from results regardless of score; used when
	// searching "similar to an existing note" to drop the note itself.
	Exclude string
}

// Hit is one ranked match. Score is the unrounded cosine similarity.
type Hit struct {
	ID    string
	Score float64
}

// Rank scores every index entry against query and returns hits sorted by
// descending score, cut at Options.Limit. Entries below Threshold and the
// Exclude id are dropped. Ties keep the index's iteration order, which is
// sorted by id here for determinism.
func Rank(query []float32, idx store.Index, opts Options) ([]Hit, error) {
	ids := make([]string, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	hits := make([]Hit, 0, len(ids))
	for _, id := range ids {
		if id == opts.Exclude {
			continue
		}
		score, err := Cosine(query, idx[id].Vector)
		if err != nil {
			return nil, fmt.Errorf("comparing against %s: %w", id, err)
		}
		if score < opts.Threshold {
			continue
		}
		hits = append(hits, Hit{ID: id, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}
