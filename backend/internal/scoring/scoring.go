// Package scoring holds the pure grade-conversion primitives. Everything here
// is stateless: explicit numeric inputs in, numbers or letters out.
package scoring

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Percentage converts a raw/max score pair into a percentage. The result is
// not clamped: a raw score above max (extra credit) yields a value above 100.
func Percentage(raw, max float64) (float64, error) {
	if max <= 0 {
		return 0, status.Error(codes.InvalidArgument, "max score must be positive")
	}
	return raw / max * 100, nil
}

// LetterGrade classifies a percentage into A/B/C/D/F. Boundaries are
// inclusive on the lower bound; values above 100 still classify as A.
func LetterGrade(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

// GradePoints maps a percentage onto the 4.0 scale. The mapping is stepwise
// on the same boundaries as LetterGrade; there is no partial credit between
// letters. Report data depends on this exact step function.
func GradePoints(pct float64) float64 {
	switch {
	case pct >= 90:
		return 4.0
	case pct >= 80:
		return 3.0
	case pct >= 70:
		return 2.0
	case pct >= 60:
		return 1.0
	default:
		return 0.0
	}
}

// Letters lists the five grade buckets in descending order, for callers that
// build distributions.
var Letters = []string{"A", "B", "C", "D", "F"}
