package util

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"schoolreports/backend/internal/shared"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON is a helper to write JSON success responses.
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := JSONResponse{Success: true, Data: payload}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP Error %d: %s", statusCode, message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := JSONError{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleStatusError translates the engine's status-code errors into HTTP
// responses. The engine speaks grpc codes; this is the only place they are
// mapped onto HTTP.
func HandleStatusError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch st.Code() {
	case codes.InvalidArgument:
		WriteJSONError(w, http.StatusBadRequest, st.Message())
	case codes.NotFound:
		WriteJSONError(w, http.StatusNotFound, st.Message())
	case codes.DeadlineExceeded:
		WriteJSONError(w, http.StatusGatewayTimeout, "The query took too long to complete.")
	case codes.Unavailable:
		WriteJSONError(w, http.StatusServiceUnavailable, "The backing store is unreachable.")
	default:
		WriteJSONError(w, http.StatusInternalServerError, st.Message())
	}
}

// DateLayout is the wire format for start_date/end_date query parameters.
const DateLayout = "2006-01-02"

// ParseFilter builds a shared.Filter from query parameters. Omitted dates
// mean "all time"; a malformed date is an InvalidArgument.
func ParseFilter(r *http.Request) (shared.Filter, error) {
	q := r.URL.Query()
	f := shared.Filter{
		StudentID: q.Get("student_id"),
		ClassID:   q.Get("class_id"),
		SubjectID: q.Get("subject_id"),
	}

	period, err := ParsePeriod(r)
	if err != nil {
		return shared.Filter{}, err
	}
	f.Period = period
	return f, nil
}

// ParsePeriod builds a shared.Period from start_date/end_date query
// parameters. The end date is pushed to the last instant of its day so the
// range stays inclusive on both ends.
func ParsePeriod(r *http.Request) (shared.Period, error) {
	q := r.URL.Query()
	var p shared.Period

	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return shared.Period{}, status.Errorf(codes.InvalidArgument, "invalid start_date %q, expected YYYY-MM-DD", raw)
		}
		p.Start = t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return shared.Period{}, status.Errorf(codes.InvalidArgument, "invalid end_date %q, expected YYYY-MM-DD", raw)
		}
		p.End = t.Add(24*time.Hour - time.Nanosecond)
	}
	return p, nil
}
