package matching

import "sort"

const DefaultLimit = 10

// NormalizeLimit applies the default for non-positive limits and caps at max
// when max is positive.
func NormalizeLimit(limit, max int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}

// Rank sorts items by descending score, keeping fetch order for ties, and
// truncates to limit.
func Rank[T any](items []T, score func(T) float64, limit int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
