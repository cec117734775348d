// Package ranking orders organisation candidates for the directory view by a
// weight blending normalized size and normalized page visits.
package ranking

import (
	"math"
	"sort"
)

// Candidate is one organisation considered for ranking.
type Candidate struct {
	ID         int64
	Label      string
	Size       int64
	PageVisits int64
}

// Ranked is a candidate with its computed weight.
type Ranked struct {
	ID     int64   `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"-"`
}

// Rank weights every candidate, sorts by weight descending and then applies
// offset and limit. Min and max are taken over the given candidates, so the
// caller must pass the whole filtered set. Equal weights keep input order.
// A limit <= 0 returns everything after offset.
func Rank(candidates []Candidate, limit, offset int) []Ranked {
	if len(candidates) == 0 {
		return []Ranked{}
	}

	sizes := newBounds()
	visits := newBounds()
	for _, c := range candidates {
		sizes.observe(c.Size)
		visits.observe(c.PageVisits)
	}

	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{
			ID:     c.ID,
			Label:  c.Label,
			Weight: round3(sizes.normalize(c.Size) * visits.normalize(c.PageVisits)),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	return window(ranked, limit, offset)
}

type bounds struct {
	min int64
	max int64
}

func newBounds() bounds {
	return bounds{min: math.MaxInt64, max: math.MinInt64}
}

func (b *bounds) observe(v int64) {
	if v < b.min {
		b.min = v
	}
	if v > b.max {
		b.max = v
	}
}

// normalize maps v into [0, 1]. A degenerate range normalizes to 0.
func (b bounds) normalize(v int64) float64 {
	if b.max == b.min {
		return 0
	}
	return float64(v-b.min) / float64(b.max-b.min)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func window(ranked []Ranked, limit, offset int) []Ranked {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ranked) {
		return []Ranked{}
	}
	ranked = ranked[offset:]
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
