// Package yearpref picks the single authoritative reporting year for a
// company out of potentially overlapping filings. 2024 filings are
// frequently late-filed and incomplete, so they are deprioritized unless
// no alternative exists.
package yearpref

import (
	"sort"
	"strconv"
)

// Resolve picks exactly one year from the candidate set, or reports
// absence for an empty (or entirely unparseable) set. Priority:
// 2023, then 2022, then 2024 only if it is the sole candidate, then the
// most recent non-2024 year. Duplicates are irrelevant.
func Resolve(candidates []string) (string, bool) {
	years := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		y, err := strconv.Atoi(c)
		if err != nil || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	if len(years) == 0 {
		return "", false
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	switch {
	case seen[2023]:
		return "2023", true
	case seen[2022]:
		return "2022", true
	case len(years) == 1 && years[0] == 2024:
		return "2024", true
	}

	for _, y := range years {
		if y != 2024 {
			return strconv.Itoa(y), true
		}
	}

	// Only 2024 remains after the fallbacks.
	return strconv.Itoa(years[0]), true
}
