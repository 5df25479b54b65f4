// Package ranking orders a cohort of per-student overall percentages.
//
// Tie policy: strict sequential ranks (1, 2, 3, ...). Students with the same
// percentage keep their input order and still receive distinct consecutive
// ranks, so every rank from 1 to n appears exactly once. The same policy is
// applied everywhere a ranking is produced.
package ranking

import (
	"sort"

	"schoolreports/backend/internal/shared"
)

// Rank sorts the cohort by overall percentage descending and assigns
// sequential ranks. The input slice is not modified.
func Rank(cohort []shared.RankedStudent) []shared.RankedStudent {
	ranked := make([]shared.RankedStudent, len(cohort))
	copy(ranked, cohort)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallPercentage > ranked[j].OverallPercentage
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
