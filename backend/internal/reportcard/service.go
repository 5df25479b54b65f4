// Package reportcard composes per-subject grade summaries, credit weights,
// and attendance into one report card per student per term.
package reportcard

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/scoring"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

// Service generates report cards.
type Service struct {
	directory  store.Directory
	aggregates *aggregate.Service
}

// NewService creates a report card generator.
func NewService(directory store.Directory, aggregates *aggregate.Service) *Service {
	return &Service{directory: directory, aggregates: aggregates}
}

// Generate builds the report card for one student in one class over a
// period. The overall average is the credit-weighted mean of per-subject
// averages; subjects with zero graded entries are excluded from both the
// weighted sum and the credit total so ungraded subjects don't drag the
// average down. Fails with codes.NotFound when the student has no
// enrollment record for the class; zero graded subjects is not an error and
// yields an all-zero card.
func (s *Service) Generate(ctx context.Context, studentID, classID string, period shared.Period) (*shared.ReportCard, error) {
	if studentID == "" || classID == "" {
		return nil, status.Error(codes.InvalidArgument, "student_id and class_id are required")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	subjects, err := s.directory.EnrolledSubjects(ctx, studentID, classID, period)
	if err != nil {
		return nil, err
	}

	card := &shared.ReportCard{
		StudentID: studentID,
		ClassID:   classID,
		Period:    period,
		Subjects:  make([]shared.SubjectGradeReport, 0, len(subjects)),
	}

	var weightedSum, totalCredits float64
	for _, subject := range subjects {
		summary, err := s.aggregates.StudentGradeSummary(ctx, shared.Filter{
			StudentID: studentID,
			ClassID:   classID,
			SubjectID: subject.SubjectID,
			Period:    period,
		})
		if err != nil {
			return nil, err
		}

		line := shared.SubjectGradeReport{Subject: subject, Summary: *summary}
		if summary.TotalEntries > 0 {
			line.GradePoints = scoring.GradePoints(summary.AveragePercentage)
			weightedSum += summary.AveragePercentage * subject.CreditWeight
			totalCredits += subject.CreditWeight
		}
		card.Subjects = append(card.Subjects, line)
	}

	if totalCredits > 0 {
		card.OverallAverage = weightedSum / totalCredits
	}
	card.OverallPercentage = card.OverallAverage
	card.OverallLetterGrade = scoring.LetterGrade(card.OverallAverage)
	card.OverallGradePoints = scoring.GradePoints(card.OverallAverage)
	card.TotalCredits = totalCredits

	attendance, err := s.aggregates.AttendanceSummary(ctx, shared.Filter{
		StudentID: studentID,
		ClassID:   classID,
		Period:    period,
	})
	if err != nil {
		return nil, err
	}
	card.Attendance = *attendance

	return card, nil
}
