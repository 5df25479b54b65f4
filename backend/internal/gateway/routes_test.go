package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/store"
)

func day(d int) time.Time {
	return time.Date(2024, time.September, d, 0, 0, 0, 0, time.UTC)
}

func testRouter() http.Handler {
	mem := &store.Memory{
		Subjects: []shared.SubjectRef{
			{SubjectID: "math", Name: "Mathematics", Code: "MATH", CreditWeight: 3},
		},
		Enrollments: []shared.Enrollment{
			{ID: "e1", StudentID: "s1", ClassID: "c1", SubjectIDs: []string{"math"}, Status: shared.StatusEnrolled},
		},
		Grades: []shared.GradeEntry{
			{ID: "g1", StudentID: "s1", SubjectID: "math", ClassID: "c1", RawScore: 45, MaxScore: 50, Date: day(5)},
			{ID: "g2", StudentID: "s1", SubjectID: "math", ClassID: "c1", RawScore: 88, MaxScore: 100, Date: day(20)},
		},
		Attendance: []shared.AttendanceEntry{
			{ID: "a1", StudentID: "s1", ClassID: "c1", Date: day(5), Status: shared.StatusPresent},
			{ID: "a2", StudentID: "s1", ClassID: "c1", Date: day(6), Status: shared.StatusLate},
		},
	}
	return SetupRoutes(NewServices(mem, mem, mem), nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doGET(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: invalid JSON response %q: %v", path, rec.Body.String(), err)
	}
	return rec, env
}

func TestStudentSummaryEndpoint(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/grades/summary/student?student_id=s1&subject_id=math")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("success = false: %s", env.Message)
	}

	var summary shared.StudentGradeSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("bad summary payload: %v", err)
	}
	if summary.TotalEntries != 2 || summary.AveragePercentage != 89 {
		t.Errorf("summary = %+v, want 2 entries at 89", summary)
	}
}

func TestStudentSummaryBadDate(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/grades/summary/student?start_date=not-a-date")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Success {
		t.Error("success = true for malformed date")
	}
}

func TestStudentSummaryInvertedRange(t *testing.T) {
	router := testRouter()

	rec, _ := doGET(t, router, "/api/grades/summary/student?start_date=2024-09-20&end_date=2024-09-05")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportCardEndpoint(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/reports/card/s1/c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var card shared.ReportCard
	if err := json.Unmarshal(env.Data, &card); err != nil {
		t.Fatalf("bad report card payload: %v", err)
	}
	if card.StudentID != "s1" || len(card.Subjects) != 1 {
		t.Errorf("card = %+v, want s1 with one subject line", card)
	}
	if card.OverallLetterGrade != "B" {
		t.Errorf("OverallLetterGrade = %q, want B", card.OverallLetterGrade)
	}
}

func TestReportCardNotFound(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/reports/card/ghost/c1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Success {
		t.Error("success = true for missing enrollment")
	}
}

func TestAttendanceSummaryEndpoint(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/attendance/summary?student_id=s1&class_id=c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary shared.AttendanceSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("bad attendance payload: %v", err)
	}
	// 1 present + 1 late: late counts toward days but not the rate.
	if summary.TotalDays != 2 || summary.AttendancePercentage != 50.0 {
		t.Errorf("summary = %+v, want 2 days at 50.0", summary)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/statistics?class_id=c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result shared.Statistics
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("bad statistics payload: %v", err)
	}
	if len(result.ClassSummaries) != 1 || len(result.Rankings) != 1 {
		t.Errorf("statistics = %+v, want one summary and one ranked student", result)
	}
}

func TestListEntriesEndpoint(t *testing.T) {
	router := testRouter()

	rec, env := doGET(t, router, "/api/grades?student_id=s1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Entries []shared.GradeEntry `json:"entries"`
		Total   int                 `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("bad listing payload: %v", err)
	}
	if payload.Total != 2 || len(payload.Entries) != 2 {
		t.Errorf("listing = %+v, want 2 entries", payload)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter()

	rec, _ := doGET(t, router, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
