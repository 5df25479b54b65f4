package handlers

import (
	"context"
	"net/http"
	"time"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/gateway/util"
	"schoolreports/backend/internal/store"
)

// AttendanceHandler serves attendance summary and listing endpoints.
type AttendanceHandler struct {
	Aggregates *aggregate.Service
	Attendance store.AttendanceEntryReader
	Timeout    time.Duration
}

func (h *AttendanceHandler) timeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return 10 * time.Second
}

// Summary handles GET /api/attendance/summary
// Query Params: student_id, class_id, start_date, end_date (all optional)
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := util.ParseFilter(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	summary, err := h.Aggregates.AttendanceSummary(ctx, filter)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, summary)
}

// Report handles GET /api/attendance/report
// Class-wide rollup with per-student rates. Defaults to the last 30 days
// when no date range is given.
func (h *AttendanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	period, err := util.ParsePeriod(r)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}
	classID := r.URL.Query().Get("class_id")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	report, err := h.Aggregates.ClassAttendanceReport(ctx, classID, period)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, report)
}

// ListEntries handles GET /api/attendance
// Returns the raw attendance entries matching the filter, oldest first.
func (h *AttendanceHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.Attendance.ReadAttendanceEntries(ctx, filter)
	if err != nil {
		util.HandleStatusError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}
