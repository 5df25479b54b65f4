// Package gateway wires the engine services into the read-only HTTP query
// surface.
package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schoolreports/backend/internal/aggregate"
	"schoolreports/backend/internal/gateway/handlers"
	"schoolreports/backend/internal/gateway/util"
	"schoolreports/backend/internal/reportcard"
	"schoolreports/backend/internal/shared"
	"schoolreports/backend/internal/statistics"
	"schoolreports/backend/internal/store"
)

// Services bundles the engine services served by the gateway.
type Services struct {
	Aggregates *aggregate.Service
	Reports    *reportcard.Service
	Stats      *statistics.Service
	Grades     store.GradeEntryReader
	Attendance store.AttendanceEntryReader
}

// NewServices builds the engine service graph over the given stores.
func NewServices(grades store.GradeEntryReader, attendance store.AttendanceEntryReader, directory store.Directory) *Services {
	aggregates := aggregate.NewService(grades, attendance)
	return &Services{
		Aggregates: aggregates,
		Reports:    reportcard.NewService(directory, aggregates),
		Stats:      statistics.NewService(grades, aggregates),
		Grades:     grades,
		Attendance: attendance,
	}
}

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(svc *Services, cfg *shared.ServiceConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(MetricsMiddleware)

	corsCfg := shared.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	requestTimeout := 10 * time.Second
	if cfg != nil {
		corsCfg = cfg.CORS
		requestTimeout = cfg.RequestTimeout
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	}))

	// Handlers
	gradeHandler := &handlers.GradeHandler{Aggregates: svc.Aggregates, Grades: svc.Grades, Timeout: requestTimeout}
	attendanceHandler := &handlers.AttendanceHandler{Aggregates: svc.Aggregates, Attendance: svc.Attendance, Timeout: requestTimeout}
	reportHandler := &handlers.ReportHandler{Reports: svc.Reports, Stats: svc.Stats, Timeout: requestTimeout}

	// Routes (read-only query surface)
	r.Route("/api", func(r chi.Router) {
		r.Route("/grades", func(r chi.Router) {
			r.Get("/", gradeHandler.ListEntries)
			r.Get("/summary/student", gradeHandler.StudentSummary)
			r.Get("/summary/class", gradeHandler.ClassSummary)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListEntries)
			r.Get("/summary", attendanceHandler.Summary)
			r.Get("/report", attendanceHandler.Report)
		})

		r.Get("/reports/card/{student_id}/{class_id}", reportHandler.GetReportCard)
		r.Get("/statistics", reportHandler.GetStatistics)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
