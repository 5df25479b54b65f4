package shared

import (
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodValidate(t *testing.T) {
	ok := []Period{
		{},
		{Start: date(2024, 9, 1)},
		{End: date(2024, 12, 20)},
		{Start: date(2024, 9, 1), End: date(2024, 12, 20)},
		{Start: date(2024, 9, 1), End: date(2024, 9, 1)}, // single day
	}
	for _, p := range ok {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", p, err)
		}
	}

	bad := Period{Start: date(2024, 12, 20), End: date(2024, 9, 1)}
	err := bad.Validate()
	if err == nil {
		t.Fatal("Validate with end before start expected error, got nil")
	}
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Validate error code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestPeriodContainsInclusiveBounds(t *testing.T) {
	p := Period{Start: date(2024, 9, 1), End: date(2024, 9, 30)}

	if !p.Contains(date(2024, 9, 1)) {
		t.Error("start boundary should be included")
	}
	if !p.Contains(date(2024, 9, 30)) {
		t.Error("end boundary should be included")
	}
	if p.Contains(date(2024, 8, 31)) {
		t.Error("day before start should be excluded")
	}
	if p.Contains(date(2024, 10, 1)) {
		t.Error("day after end should be excluded")
	}

	if !(Period{}).Contains(date(1990, 1, 1)) {
		t.Error("zero period should cover all time")
	}
}

func TestFilterMatchesGrade(t *testing.T) {
	entry := GradeEntry{
		StudentID: "s1",
		SubjectID: "math",
		ClassID:   "c1",
		Date:      date(2024, 9, 15),
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"matching ids", Filter{StudentID: "s1", ClassID: "c1", SubjectID: "math"}, true},
		{"wrong student", Filter{StudentID: "s2"}, false},
		{"wrong subject", Filter{SubjectID: "english"}, false},
		{"inside range", Filter{Period: Period{Start: date(2024, 9, 1), End: date(2024, 9, 30)}}, true},
		{"outside range", Filter{Period: Period{End: date(2024, 9, 14)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.MatchesGrade(entry); got != tt.want {
				t.Errorf("MatchesGrade = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterMatchesAttendanceIgnoresSubject(t *testing.T) {
	entry := AttendanceEntry{StudentID: "s1", ClassID: "c1", Date: date(2024, 9, 15), Status: StatusPresent}

	f := Filter{StudentID: "s1", ClassID: "c1", SubjectID: "math"}
	if !f.MatchesAttendance(entry) {
		t.Error("subject filter must not exclude attendance entries")
	}
}
