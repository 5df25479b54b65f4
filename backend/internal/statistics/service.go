// Package statistics produces class/subject-level distributions and cohort
// rankings for a reporting period. It is pure composition over the
// aggregation and ranking engines; no new grading rules live here.
package statistics

import (
	"context"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/ranking"
	"schoolreports/backend/internal/scoring"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

// Service computes reporting-period statistics.
type Service struct {
	grades     store.GradeEntryReader
	aggregates *aggregate.Service
}

// NewService creates a statistics service.
func NewService(grades store.GradeEntryReader, aggregates *aggregate.Service) *Service {
	return &Service{grades: grades, aggregates: aggregates}
}

type combo struct {
	classID   string
	subjectID string
}

// Compute returns one ClassGradeSummary per (class, subject) combination in
// scope plus a ranking of every student in scope. classID and subjectID are
// optional narrowing parameters; empty means all.
//
// Each student's overall percentage is the unweighted mean of their entry
// percentages across the whole scope, matching the per-student summary rule.
// Cohort assembly order is sorted by student ID, so exact ties rank in
// student-ID order.
func (s *Service) Compute(ctx context.Context, period shared.Period, classID, subjectID string) (*shared.Statistics, error) {
	scope := shared.Filter{ClassID: classID, SubjectID: subjectID, Period: period}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.grades.ReadGradeEntries(ctx, scope)
	if err != nil {
		return nil, err
	}

	combos := collectCombos(entries)

	result := &shared.Statistics{
		ClassSummaries: make([]shared.ClassGradeSummary, len(combos)),
		Rankings:       []shared.RankedStudent{},
	}

	// Summaries are independent of each other; compute them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range combos {
		i, c := i, c
		g.Go(func() error {
			summary, err := s.aggregates.ClassGradeSummary(gctx, shared.Filter{
				ClassID:   c.classID,
				SubjectID: c.subjectID,
				Period:    period,
			})
			if err != nil {
				return err
			}
			result.ClassSummaries[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rankings, err := rankCohort(entries)
	if err != nil {
		return nil, err
	}
	result.Rankings = rankings
	result.Cohort = cohortStats(result.Rankings)
	return result, nil
}

// collectCombos extracts the distinct (class, subject) pairs present in the
// entries, in a deterministic order.
func collectCombos(entries []shared.GradeEntry) []combo {
	seen := make(map[combo]bool)
	var combos []combo
	for _, e := range entries {
		c := combo{classID: e.ClassID, subjectID: e.SubjectID}
		if !seen[c] {
			seen[c] = true
			combos = append(combos, c)
		}
	}
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].classID != combos[j].classID {
			return combos[i].classID < combos[j].classID
		}
		return combos[i].subjectID < combos[j].subjectID
	})
	return combos
}

// rankCohort folds the scoped entries into per-student overall percentages
// and ranks them.
func rankCohort(entries []shared.GradeEntry) ([]shared.RankedStudent, error) {
	byStudent := make(map[string][]float64)
	for _, e := range entries {
		pct, err := scoring.Percentage(e.RawScore, e.MaxScore)
		if err != nil {
			return nil, err
		}
		byStudent[e.StudentID] = append(byStudent[e.StudentID], pct)
	}

	cohort := make([]shared.RankedStudent, 0, len(byStudent))
	for studentID, percentages := range byStudent {
		avg, _ := stats.Mean(percentages)
		cohort = append(cohort, shared.RankedStudent{StudentID: studentID, OverallPercentage: avg})
	}
	sort.Slice(cohort, func(i, j int) bool { return cohort[i].StudentID < cohort[j].StudentID })

	return ranking.Rank(cohort), nil
}

// cohortStats summarizes the distribution of overall percentages.
func cohortStats(rankings []shared.RankedStudent) shared.CohortStats {
	if len(rankings) == 0 {
		return shared.CohortStats{}
	}

	percentages := make([]float64, 0, len(rankings))
	for _, r := range rankings {
		percentages = append(percentages, r.OverallPercentage)
	}

	mean, _ := stats.Mean(percentages)
	median, _ := stats.Median(percentages)
	stddev, _ := stats.StandardDeviation(percentages)

	return shared.CohortStats{
		Students:         len(rankings),
		MeanPercentage:   mean,
		MedianPercentage: median,
		StdDevPercentage: stddev,
	}
}
