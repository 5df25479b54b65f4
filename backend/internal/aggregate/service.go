// Package aggregate folds raw grade and attendance entries into derived
// summaries. Every operation is a pure, read-only pass over one snapshot of
// entries; nothing is ever written back to the stores.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"schoolreports/backend/internal/scoring"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

// Service computes per-student and per-class summaries.
type Service struct {
	grades     store.GradeEntryReader
	attendance store.AttendanceEntryReader
}

// NewService creates an aggregation service over the given readers.
func NewService(grades store.GradeEntryReader, attendance store.AttendanceEntryReader) *Service {
	return &Service{grades: grades, attendance: attendance}
}

// StudentGradeSummary aggregates the grade entries matching the filter into
// one per-student summary. A filter matching zero entries yields the zero
// summary with letter grade F; callers tell "no data" apart from a failing
// grade via TotalEntries.
func (s *Service) StudentGradeSummary(ctx context.Context, f shared.Filter) (*shared.StudentGradeSummary, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.grades.ReadGradeEntries(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := &shared.StudentGradeSummary{
		StudentID:   f.StudentID,
		SubjectID:   f.SubjectID,
		ClassID:     f.ClassID,
		LetterGrade: shared.GradeF,
	}
	if len(entries) == 0 {
		return summary, nil
	}

	percentages, err := entryPercentages(entries)
	if err != nil {
		return nil, err
	}

	mean, _ := stats.Mean(percentages)
	highest, _ := stats.Max(percentages)
	lowest, _ := stats.Min(percentages)

	summary.TotalEntries = len(entries)
	summary.AveragePercentage = mean
	summary.HighestPercentage = highest
	summary.LowestPercentage = lowest
	summary.LetterGrade = scoring.LetterGrade(mean)
	return summary, nil
}

// ClassGradeSummary aggregates per-student averages across a class. Only
// students with at least one matching entry participate; the class average
// is the unweighted mean of the student averages, and the distribution
// buckets each student's letter grade.
func (s *Service) ClassGradeSummary(ctx context.Context, f shared.Filter) (*shared.ClassGradeSummary, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.grades.ReadGradeEntries(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := &shared.ClassGradeSummary{
		ClassID:           f.ClassID,
		SubjectID:         f.SubjectID,
		GradeDistribution: emptyDistribution(),
	}

	byStudent := make(map[string][]float64)
	for _, e := range entries {
		pct, err := scoring.Percentage(e.RawScore, e.MaxScore)
		if err != nil {
			return nil, err
		}
		byStudent[e.StudentID] = append(byStudent[e.StudentID], pct)
	}
	if len(byStudent) == 0 {
		return summary, nil
	}

	studentAverages := make([]float64, 0, len(byStudent))
	for _, percentages := range byStudent {
		avg, _ := stats.Mean(percentages)
		studentAverages = append(studentAverages, avg)
		summary.GradeDistribution[scoring.LetterGrade(avg)]++
	}

	classAverage, _ := stats.Mean(studentAverages)
	summary.TotalStudents = len(byStudent)
	summary.AveragePercentage = classAverage
	return summary, nil
}

// AttendanceSummary counts attendance entries by status. Only exact
// "present" days count toward the percentage numerator; late and excused
// days are in the denominator only.
func (s *Service) AttendanceSummary(ctx context.Context, f shared.Filter) (*shared.AttendanceSummary, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.attendance.ReadAttendanceEntries(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := &shared.AttendanceSummary{
		StudentID: f.StudentID,
		ClassID:   f.ClassID,
	}
	for _, e := range entries {
		switch e.Status {
		case shared.StatusPresent:
			summary.Present++
		case shared.StatusAbsent:
			summary.Absent++
		case shared.StatusLate:
			summary.Late++
		case shared.StatusExcused:
			summary.Excused++
		}
	}

	summary.TotalDays = summary.Present + summary.Absent + summary.Late + summary.Excused
	if summary.TotalDays > 0 {
		summary.AttendancePercentage = float64(summary.Present) / float64(summary.TotalDays) * 100
	}
	return summary, nil
}

// ClassAttendanceReport rolls a class's attendance up over a period:
// aggregate status counts plus per-student rates. When no period is given
// the report covers the last 30 days, matching the legacy reporting window.
func (s *Service) ClassAttendanceReport(ctx context.Context, classID string, period shared.Period) (*shared.ClassAttendanceReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if period.IsZero() {
		period.End = time.Now()
		period.Start = period.End.AddDate(0, 0, -30)
	}

	entries, err := s.attendance.ReadAttendanceEntries(ctx, shared.Filter{ClassID: classID, Period: period})
	if err != nil {
		return nil, err
	}

	report := &shared.ClassAttendanceReport{
		ClassID:  classID,
		Period:   period,
		Students: []shared.StudentAttendanceRate{},
	}

	type tally struct{ total, present int }
	byStudent := make(map[string]*tally)
	for _, e := range entries {
		report.TotalRecords++
		switch e.Status {
		case shared.StatusPresent:
			report.Present++
		case shared.StatusAbsent:
			report.Absent++
		case shared.StatusLate:
			report.Late++
		case shared.StatusExcused:
			report.Excused++
		}

		t := byStudent[e.StudentID]
		if t == nil {
			t = &tally{}
			byStudent[e.StudentID] = t
		}
		t.total++
		if e.Status == shared.StatusPresent {
			t.present++
		}
	}

	if report.TotalRecords > 0 {
		report.AttendanceRate = float64(report.Present) / float64(report.TotalRecords) * 100
	}

	for studentID, t := range byStudent {
		rate := 0.0
		if t.total > 0 {
			rate = float64(t.present) / float64(t.total) * 100
		}
		report.Students = append(report.Students, shared.StudentAttendanceRate{
			StudentID:      studentID,
			TotalDays:      t.total,
			PresentDays:    t.present,
			AttendanceRate: rate,
		})
	}
	sort.Slice(report.Students, func(i, j int) bool {
		return report.Students[i].StudentID < report.Students[j].StudentID
	})

	return report, nil
}

// entryPercentages converts entries into per-entry percentages.
func entryPercentages(entries []shared.GradeEntry) ([]float64, error) {
	percentages := make([]float64, 0, len(entries))
	for _, e := range entries {
		pct, err := scoring.Percentage(e.RawScore, e.MaxScore)
		if err != nil {
			return nil, err
		}
		percentages = append(percentages, pct)
	}
	return percentages, nil
}

// emptyDistribution returns a distribution with every bucket present so the
// JSON shape is stable even for empty classes.
func emptyDistribution() map[string]int {
	dist := make(map[string]int, len(scoring.Letters))
	for _, letter := range scoring.Letters {
		dist[letter] = 0
	}
	return dist
}
