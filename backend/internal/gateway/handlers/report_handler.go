package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"schoolreports/backend/internal/gateway/util"
	"schoolreports/backend/internal/reportcard"
	"schoolreports/backend/internal/statistics"
)

// ReportHandler serves report card and statistics endpoints.
type ReportHandler struct {
	Reports *reportcard.Service
	Stats   *statistics.Service
	Timeout time.Duration
}

func (h *ReportHandler) timeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return 10 * time.Second
}

// GetReportCard handles GET /api/reports/card/{student_id}/{class_id}
// Query Params: start_date, end_date (optional; omission means all time)
func (h *ReportHandler) GetReportCard(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")
	classID := chi.URLParam(r, "class_id")

	period, err := util.ParsePeriod(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	card, err := h.Reports.Generate(ctx, studentID, classID, period)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, card)
}

// GetStatistics handles GET /api/statistics
// Query Params: class_id, subject_id (optional scope), start_date, end_date
func (h *ReportHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	period, err := util.ParsePeriod(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	result, err := h.Stats.Compute(ctx, period, q.Get("class_id"), q.Get("subject_id"))
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, result)
}
