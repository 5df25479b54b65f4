// Package store defines the read-only interfaces over the external grade,
// attendance, and directory stores, plus MongoDB and in-memory
// implementations. The engine only ever reads; writes belong to the
// administration side of the system.
package store

import (
	"context"

	"schoolreports/backend/internal/shared"
)

// GradeEntryReader reads raw grade events matching a filter.
type GradeEntryReader interface {
	ReadGradeEntries(ctx context.Context, f shared.Filter) ([]shared.GradeEntry, error)
}

// AttendanceEntryReader reads raw attendance events matching a filter.
type AttendanceEntryReader interface {
	ReadAttendanceEntries(ctx context.Context, f shared.Filter) ([]shared.AttendanceEntry, error)
}

// Directory resolves enrollment reference data.
type Directory interface {
	// EnrolledSubjects returns the subjects a student takes in a class during
	// a period. It fails with codes.NotFound when the student has no
	// enrollment record for the class.
	EnrolledSubjects(ctx context.Context, studentID, classID string, period shared.Period) ([]shared.SubjectRef, error)
}
