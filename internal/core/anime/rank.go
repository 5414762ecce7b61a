package anime

import (
	"cmp"
	"slices"
)

// Rank orders matches by confidence descending, keeps the first maxResults and clamps confidences to limit
// Ties keep input order. The input slice is not mutated. A negative maxResults is treated as 0
func Rank(matches []Match, maxResults int, limit float64) []Match {
	return RankBy(matches, maxResults, limit, func(m *Match) *float64 { return &m.Confidence })
}

// RankBy is Rank for any item type; score must return a pointer into the item it is given
func RankBy[T any](items []T, maxResults int, limit float64, score func(*T) *float64) []T {
	if maxResults < 0 {
		maxResults = 0
	}
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(*score(&b), *score(&a))
	})
	if len(out) > maxResults {
		out = out[:maxResults:maxResults]
	}
	for i := range out {
		if s := score(&out[i]); *s > limit {
			*s = limit
		}
	}
	return out
}
