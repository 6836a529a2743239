package http

import (
	"net/http"

	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(reportService reports.ReportService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	generateReportHandler := NewGenerateReportHandler(reportService)
	getReportHandler := NewGetReportHandler(reportService)

	// Routes
	router.Post("/reports", errorHandlingAdapter(generateReportHandler))
	router.Get("/reports/{date}", errorHandlingAdapter(getReportHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
