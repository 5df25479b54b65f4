package handlers

import (
	"context"
	"net/http"
	"time"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/gateway/util"
	"schoolreports/backend/internal/store"
)

// GradeHandler serves grade summary and listing endpoints.
type GradeHandler struct {
	Aggregates *aggregate.Service
	Grades     store.GradeEntryReader
	Timeout    time.Duration
}

func (h *GradeHandler) timeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return 10 * time.Second
}

// StudentSummary handles GET /api/grades/summary/student
// Query Params: student_id, class_id, subject_id, start_date, end_date (all optional)
func (h *GradeHandler) StudentSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := util.ParseFilter(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	summary, err := h.Aggregates.StudentGradeSummary(ctx, filter)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, summary)
}

// ClassSummary handles GET /api/grades/summary/class
// Query Params: class_id, subject_id, start_date, end_date (all optional)
func (h *GradeHandler) ClassSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := util.ParseFilter(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	summary, err := h.Aggregates.ClassGradeSummary(ctx, filter)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, summary)
}

// ListEntries handles GET /api/grades
// Returns the raw grade entries matching the filter, oldest first.
func (h *GradeHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := util.ParseFilter(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}
	if err := filter.Validate(); err != nil {
		util.HandleStatusError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	entries, err := h.Grades.ReadGradeEntries(ctx, filter)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}
