package ranking

import (
	"testing"

	"schoolreports/backend/internal/shared"
)

func TestRankOrdersDescending(t *testing.T) {
	cohort := []shared.RankedStudent{
		{StudentID: "s1", OverallPercentage: 72.5},
		{StudentID: "s2", OverallPercentage: 91.0},
		{StudentID: "s3", OverallPercentage: 55.0},
		{StudentID: "s4", OverallPercentage: 83.3},
	}

	ranked := Rank(cohort)

	if len(ranked) != len(cohort) {
		t.Fatalf("len = %d, want %d", len(ranked), len(cohort))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].OverallPercentage < ranked[i].OverallPercentage {
			t.Errorf("not sorted descending at %d: %v < %v", i, ranked[i-1].OverallPercentage, ranked[i].OverallPercentage)
		}
	}

	wantOrder := []string{"s2", "s4", "s1", "s3"}
	for i, want := range wantOrder {
		if ranked[i].StudentID != want {
			t.Errorf("position %d = %s, want %s", i, ranked[i].StudentID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankSequentialNoGapsNoDuplicates(t *testing.T) {
	cohort := []shared.RankedStudent{
		{StudentID: "a", OverallPercentage: 80},
		{StudentID: "b", OverallPercentage: 80},
		{StudentID: "c", OverallPercentage: 80},
		{StudentID: "d", OverallPercentage: 95},
	}

	ranked := Rank(cohort)

	seen := make(map[int]bool)
	for _, r := range ranked {
		if seen[r.Rank] {
			t.Errorf("duplicate rank %d", r.Rank)
		}
		seen[r.Rank] = true
	}
	for want := 1; want <= len(cohort); want++ {
		if !seen[want] {
			t.Errorf("missing rank %d", want)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	cohort := []shared.RankedStudent{
		{StudentID: "first", OverallPercentage: 80},
		{StudentID: "second", OverallPercentage: 80},
		{StudentID: "third", OverallPercentage: 80},
	}

	ranked := Rank(cohort)

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if ranked[i].StudentID != want {
			t.Errorf("tie order position %d = %s, want %s", i, ranked[i].StudentID, want)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	cohort := []shared.RankedStudent{
		{StudentID: "low", OverallPercentage: 10},
		{StudentID: "high", OverallPercentage: 90},
	}

	Rank(cohort)

	if cohort[0].StudentID != "low" || cohort[0].Rank != 0 {
		t.Errorf("input slice was mutated: %+v", cohort)
	}
}

func TestRankEmptyCohort(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}
