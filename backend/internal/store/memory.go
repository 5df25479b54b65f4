package store

import (
	"context"
	"sort"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"schoolreports/backend/internal/shared"
)

// Memory is an in-memory store for tests and local development. Populate the
// slices up front; the reader methods never mutate them.
type Memory struct {
	Grades      []shared.GradeEntry
	Attendance  []shared.AttendanceEntry
	Enrollments []shared.Enrollment
	Subjects    []shared.SubjectRef
}

// ReadGradeEntries returns matching grade entries, oldest first.
func (m *Memory) ReadGradeEntries(ctx context.Context, f shared.Filter) ([]shared.GradeEntry, error) {
	entries := make([]shared.GradeEntry, 0)
	for _, e := range m.Grades {
		if f.MatchesGrade(e) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// ReadAttendanceEntries returns matching attendance entries, oldest first.
func (m *Memory) ReadAttendanceEntries(ctx context.Context, f shared.Filter) ([]shared.AttendanceEntry, error) {
	entries := make([]shared.AttendanceEntry, 0)
	for _, e := range m.Attendance {
		if f.MatchesAttendance(e) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// EnrolledSubjects resolves the subjects a student takes in a class.
func (m *Memory) EnrolledSubjects(ctx context.Context, studentID, classID string, period shared.Period) ([]shared.SubjectRef, error) {
	var enrollment *shared.Enrollment
	for i := range m.Enrollments {
		e := &m.Enrollments[i]
		if e.StudentID == studentID && e.ClassID == classID && e.Status == shared.StatusEnrolled {
			enrollment = e
			break
		}
	}
	if enrollment == nil {
		return nil, status.Errorf(codes.NotFound, "no enrollment for student %s in class %s", studentID, classID)
	}

	byID := make(map[string]shared.SubjectRef, len(m.Subjects))
	for _, s := range m.Subjects {
		byID[s.SubjectID] = s
	}

	subjects := make([]shared.SubjectRef, 0, len(enrollment.SubjectIDs))
	for _, id := range enrollment.SubjectIDs {
		if s, ok := byID[id]; ok {
			subjects = append(subjects, s)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}
