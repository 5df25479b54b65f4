// ============================================================================
// backend/internal/shared/models.go
// Shared data models for grade/attendance entries and derived summaries
// ============================================================================

package shared

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ============================================================================
// Raw Entry Models (owned by the external stores, read-only here)
// ============================================================================

// GradeEntry represents one immutable graded event (quiz, exam, homework, ...)
type GradeEntry struct {
	ID        string    `bson:"_id" json:"id"`
	StudentID string    `bson:"student_id" json:"student_id"`
	SubjectID string    `bson:"subject_id" json:"subject_id"`
	ClassID   string    `bson:"class_id" json:"class_id"`
	RawScore  float64   `bson:"raw_score" json:"raw_score"`
	MaxScore  float64   `bson:"max_score" json:"max_score"`
	EntryType string    `bson:"entry_type" json:"entry_type"` // quiz, exam, homework, project
	Date      time.Time `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// AttendanceEntry represents one attendance record.
// At most one entry exists per (student, class, date); duplicates are the
// writer's problem, not ours.
type AttendanceEntry struct {
	ID        string    `bson:"_id" json:"id"`
	StudentID string    `bson:"student_id" json:"student_id"`
	ClassID   string    `bson:"class_id" json:"class_id"`
	Date      time.Time `bson:"date" json:"date"`
	Status    string    `bson:"status" json:"status"` // present, absent, late, excused
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SubjectRef is the directory's view of a subject.
type SubjectRef struct {
	SubjectID    string  `bson:"_id" json:"subject_id"`
	Name         string  `bson:"name" json:"name"`
	Code         string  `bson:"code" json:"code"`
	CreditWeight float64 `bson:"credit_weight" json:"credit_weight"`
}

// Enrollment ties a student to a class and the subjects taken there.
type Enrollment struct {
	ID         string    `bson:"_id" json:"id"`
	StudentID  string    `bson:"student_id" json:"student_id"`
	ClassID    string    `bson:"class_id" json:"class_id"`
	SubjectIDs []string  `bson:"subject_ids" json:"subject_ids"`
	Status     string    `bson:"status" json:"status"`
	EnrolledAt time.Time `bson:"enrolled_at" json:"enrolled_at"`
}

// ============================================================================
// Filtering
// ============================================================================

// Period is an inclusive date range. A zero Start or End means unbounded on
// that side, so the zero Period covers all time.
type Period struct {
	Start time.Time `json:"start_date,omitempty"`
	End   time.Time `json:"end_date,omitempty"`
}

// Validate rejects ranges that end before they start.
func (p Period) Validate() error {
	if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return status.Error(codes.InvalidArgument, "end_date must not be before start_date")
	}
	return nil
}

// Contains reports whether t falls inside the period, both ends inclusive.
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && t.After(p.End) {
		return false
	}
	return true
}

// IsZero reports whether no bound is set on either side.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Filter selects grade or attendance entries. Empty string fields match
// everything; the embedded Period scopes by date.
type Filter struct {
	StudentID string `json:"student_id,omitempty"`
	ClassID   string `json:"class_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
	Period
}

// Validate checks the date range. Identifier fields are free-form and never
// rejected here; an unknown ID simply matches nothing.
func (f Filter) Validate() error {
	return f.Period.Validate()
}

// MatchesGrade reports whether a grade entry satisfies the filter.
func (f Filter) MatchesGrade(e GradeEntry) bool {
	if f.StudentID != "" && e.StudentID != f.StudentID {
		return false
	}
	if f.ClassID != "" && e.ClassID != f.ClassID {
		return false
	}
	if f.SubjectID != "" && e.SubjectID != f.SubjectID {
		return false
	}
	return f.Contains(e.Date)
}

// MatchesAttendance reports whether an attendance entry satisfies the filter.
// SubjectID is ignored: attendance is tracked per class, not per subject.
func (f Filter) MatchesAttendance(e AttendanceEntry) bool {
	if f.StudentID != "" && e.StudentID != f.StudentID {
		return false
	}
	if f.ClassID != "" && e.ClassID != f.ClassID {
		return false
	}
	return f.Contains(e.Date)
}

// ============================================================================
// Derived Summary Models (recomputed on every query, never persisted)
// ============================================================================

// StudentGradeSummary aggregates one student's grade entries under a filter.
type StudentGradeSummary struct {
	StudentID         string  `json:"student_id"`
	SubjectID         string  `json:"subject_id,omitempty"`
	ClassID           string  `json:"class_id,omitempty"`
	TotalEntries      int     `json:"total_entries"`
	AveragePercentage float64 `json:"average_percentage"`
	HighestPercentage float64 `json:"highest_percentage"`
	LowestPercentage  float64 `json:"lowest_percentage"`
	LetterGrade       string  `json:"letter_grade"`
}

// ClassGradeSummary aggregates a class's per-student averages.
type ClassGradeSummary struct {
	ClassID           string         `json:"class_id"`
	SubjectID         string         `json:"subject_id,omitempty"`
	TotalStudents     int            `json:"total_students"`
	AveragePercentage float64        `json:"average_percentage"`
	GradeDistribution map[string]int `json:"grade_distribution"` // A..F -> student count
}

// AttendanceSummary aggregates one student's attendance in a class.
// Only exact "present" days count toward the percentage numerator; late and
// excused days sit in the denominator only. That asymmetry is deliberate.
type AttendanceSummary struct {
	StudentID            string  `json:"student_id"`
	ClassID              string  `json:"class_id,omitempty"`
	TotalDays            int     `json:"total_days"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Late                 int     `json:"late"`
	Excused              int     `json:"excused"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// StudentAttendanceRate is one row of a class-wide attendance report.
type StudentAttendanceRate struct {
	StudentID      string  `json:"student_id"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// ClassAttendanceReport is the class-wide attendance rollup: aggregate status
// counts plus a per-student breakdown.
type ClassAttendanceReport struct {
	ClassID        string                  `json:"class_id,omitempty"`
	Period         Period                  `json:"period"`
	TotalRecords   int                     `json:"total_records"`
	Present        int                     `json:"present"`
	Absent         int                     `json:"absent"`
	Late           int                     `json:"late"`
	Excused        int                     `json:"excused"`
	AttendanceRate float64                 `json:"attendance_rate"`
	Students       []StudentAttendanceRate `json:"students"`
}

// ============================================================================
// Report Card Models
// ============================================================================

// SubjectGradeReport is one subject line on a report card.
type SubjectGradeReport struct {
	Subject     SubjectRef          `json:"subject"`
	Summary     StudentGradeSummary `json:"summary"`
	GradePoints float64             `json:"grade_points"`
}

// ReportCard is the composite per-student, per-class, per-period document.
// OverallAverage and OverallPercentage carry the same credit-weighted figure
// under both names the legacy API exposed.
type ReportCard struct {
	StudentID          string               `json:"student_id"`
	ClassID            string               `json:"class_id"`
	Period             Period               `json:"period"`
	Subjects           []SubjectGradeReport `json:"subjects"`
	OverallAverage     float64              `json:"overall_average"`
	OverallPercentage  float64              `json:"overall_percentage"`
	OverallLetterGrade string               `json:"overall_letter_grade"`
	OverallGradePoints float64              `json:"overall_grade_points"`
	TotalCredits       float64              `json:"total_credits"`
	Attendance         AttendanceSummary    `json:"attendance"`
}

// ============================================================================
// Ranking & Statistics Models
// ============================================================================

// RankedStudent is one row of a cohort ranking.
type RankedStudent struct {
	StudentID         string  `json:"student_id"`
	OverallPercentage float64 `json:"overall_percentage"`
	Rank              int     `json:"rank"`
}

// CohortStats carries distribution figures across a ranked cohort.
type CohortStats struct {
	Students         int     `json:"students"`
	MeanPercentage   float64 `json:"mean_percentage"`
	MedianPercentage float64 `json:"median_percentage"`
	StdDevPercentage float64 `json:"stddev_percentage"`
}

// Statistics is the reporting-period rollup: one ClassGradeSummary per
// in-scope (class, subject) pair plus the cohort ranking.
type Statistics struct {
	ClassSummaries []ClassGradeSummary `json:"class_summaries"`
	Rankings       []RankedStudent     `json:"rankings"`
	Cohort         CohortStats         `json:"cohort"`
}

// ============================================================================
// Validation Constants
// ============================================================================

const (
	// Attendance statuses
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"

	// Enrollment statuses
	StatusEnrolled  = "enrolled"
	StatusDropped   = "dropped"
	StatusCompleted = "completed"

	// Letter grades
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// IsValidAttendanceStatus checks an attendance status against the schema.
func IsValidAttendanceStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}
