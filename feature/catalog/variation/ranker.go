// Package variation assigns display ordinals to printings of one card within
// one set.
package variation

import (
	"slices"

	"card-catalog/core/registry"
	"card-catalog/feature/catalog/collector"
	"card-catalog/feature/catalog/graph"
)

// Ranker computes 1-based variation ordinals by collector number. Results
// are memoized per printing for the ranker's lifetime, so a ranker must only
// be used on a graph that is no longer being built.
type Ranker struct {
	comparator *collector.Comparator
	memo       *registry.Registry[int]
}

// New creates a ranker ordering collector numbers with comparator.
func New(comparator *collector.Comparator) *Ranker {
	return &Ranker{
		comparator: comparator,
		memo:       registry.New[int](),
	}
}

// Siblings returns the printings sharing p's card and set, in collector order.
func (r *Ranker) Siblings(p *graph.Printing) []*graph.Printing {
	var siblings []*graph.Printing
	for _, other := range p.Card.Printings() {
		if other.Set == p.Set {
			siblings = append(siblings, other)
		}
	}
	slices.SortStableFunc(siblings, func(a, b *graph.Printing) int {
		return r.comparator.Compare(a.CollectorNumber, b.CollectorNumber)
	})
	return siblings
}

// Variation returns p's position among its siblings, starting at 1.
func (r *Ranker) Variation(p *graph.Printing) int {
	v, _, _ := r.memo.GetOrCreate(p.ID, func() (int, error) {
		return r.rank(p), nil
	})
	return v
}

func (r *Ranker) rank(p *graph.Printing) int {
	numbers := make([]string, 0)
	for _, s := range r.Siblings(p) {
		numbers = append(numbers, s.CollectorNumber)
	}
	if i := slices.Index(numbers, p.CollectorNumber); i >= 0 {
		return i + 1
	}
	return 1
}
