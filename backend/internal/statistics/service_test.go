package statistics

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

func day(d int) time.Time {
	return time.Date(2024, time.September, d, 0, 0, 0, 0, time.UTC)
}

// Fixture spans two classes and two subjects:
//
//	c1/math:    s1 avg 90, s2 avg 60
//	c1/english: s1 avg 80
//	c2/math:    s3 avg 70
func testStore() *store.Memory {
	return &store.Memory{
		Grades: []shared.GradeEntry{
			{ID: "g1", StudentID: "s1", SubjectID: "math", ClassID: "c1", RawScore: 45, MaxScore: 50, Date: day(5)},
			{ID: "g2", StudentID: "s2", SubjectID: "math", ClassID: "c1", RawScore: 30, MaxScore: 50, Date: day(5)},
			{ID: "g3", StudentID: "s1", SubjectID: "english", ClassID: "c1", RawScore: 16, MaxScore: 20, Date: day(9)},
			{ID: "g4", StudentID: "s3", SubjectID: "math", ClassID: "c2", RawScore: 35, MaxScore: 50, Date: day(5)},
		},
	}
}

func newTestService() *Service {
	mem := testStore()
	return NewService(mem, aggregate.NewService(mem, mem))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeClassSummaries(t *testing.T) {
	svc := newTestService()

	result, err := svc.Compute(context.Background(), shared.Period{}, "", "")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Deterministic order: (c1,english), (c1,math), (c2,math).
	if len(result.ClassSummaries) != 3 {
		t.Fatalf("class summaries = %d, want 3", len(result.ClassSummaries))
	}

	first := result.ClassSummaries[0]
	if first.ClassID != "c1" || first.SubjectID != "english" {
		t.Errorf("first summary = %s/%s, want c1/english", first.ClassID, first.SubjectID)
	}

	second := result.ClassSummaries[1]
	if second.ClassID != "c1" || second.SubjectID != "math" {
		t.Fatalf("second summary = %s/%s, want c1/math", second.ClassID, second.SubjectID)
	}
	if second.TotalStudents != 2 || !almostEqual(second.AveragePercentage, 75) {
		t.Errorf("c1/math summary = %+v, want 2 students average 75", second)
	}
	if second.GradeDistribution["A"] != 1 || second.GradeDistribution["D"] != 1 {
		t.Errorf("c1/math distribution = %v, want one A and one D", second.GradeDistribution)
	}
}

func TestComputeRankings(t *testing.T) {
	svc := newTestService()

	result, err := svc.Compute(context.Background(), shared.Period{}, "", "")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Overall percentages: s1 (90+80)/2 = 85, s3 70, s2 60.
	if len(result.Rankings) != 3 {
		t.Fatalf("rankings = %d, want 3", len(result.Rankings))
	}

	for i := 1; i < len(result.Rankings); i++ {
		if result.Rankings[i-1].OverallPercentage < result.Rankings[i].OverallPercentage {
			t.Errorf("rankings not sorted descending at %d", i)
		}
	}

	seen := make(map[int]bool)
	for _, r := range result.Rankings {
		if seen[r.Rank] {
			t.Errorf("duplicate rank %d", r.Rank)
		}
		seen[r.Rank] = true
	}
	for want := 1; want <= len(result.Rankings); want++ {
		if !seen[want] {
			t.Errorf("missing rank %d", want)
		}
	}

	top := result.Rankings[0]
	if top.StudentID != "s1" || !almostEqual(top.OverallPercentage, 85) {
		t.Errorf("top ranked = %+v, want s1 at 85", top)
	}
}

func TestComputeScoped(t *testing.T) {
	svc := newTestService()

	result, err := svc.Compute(context.Background(), shared.Period{}, "c1", "math")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(result.ClassSummaries) != 1 {
		t.Fatalf("scoped summaries = %d, want 1", len(result.ClassSummaries))
	}
	if len(result.Rankings) != 2 {
		t.Errorf("scoped cohort = %d, want 2", len(result.Rankings))
	}
	if result.Cohort.Students != 2 {
		t.Errorf("cohort students = %d, want 2", result.Cohort.Students)
	}
	if !almostEqual(result.Cohort.MeanPercentage, 75) {
		t.Errorf("cohort mean = %v, want 75", result.Cohort.MeanPercentage)
	}
	if !almostEqual(result.Cohort.MedianPercentage, 75) {
		t.Errorf("cohort median = %v, want 75", result.Cohort.MedianPercentage)
	}
}

func TestComputeEmptyScope(t *testing.T) {
	svc := newTestService()

	result, err := svc.Compute(context.Background(), shared.Period{}, "ghost", "")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(result.ClassSummaries) != 0 || len(result.Rankings) != 0 {
		t.Errorf("empty scope produced data: %+v", result)
	}
	if result.Cohort.Students != 0 {
		t.Errorf("empty scope cohort = %+v, want zeros", result.Cohort)
	}
}

func TestComputeInvalidPeriod(t *testing.T) {
	svc := newTestService()

	_, err := svc.Compute(context.Background(), shared.Period{Start: day(20), End: day(5)}, "", "")
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("error code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	svc := newTestService()

	first, err := svc.Compute(context.Background(), shared.Period{}, "", "")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.Compute(context.Background(), shared.Period{}, "", "")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated query diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
