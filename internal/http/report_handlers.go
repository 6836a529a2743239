package http

import (
	"encoding/json"
	"net/http"

	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/validators"

	"github.com/go-chi/chi/v5"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type generateReportHandler struct {
	reportService reports.ReportService
}

func NewGenerateReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &generateReportHandler{
		reportService: reportService,
	}
}

// Handle processes POST /reports: one report run over the newest log file.
func (h *generateReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report, err := h.reportService.Generate(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, report)
}

type getReportRequest struct {
	Date string `validate:"required,reportdate"`
}

type getReportHandler struct {
	reportService reports.ReportService
	validate      *validators.Validate
}

func NewGetReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &getReportHandler{
		reportService: reportService,
		validate:      validators.New(),
	}
}

// Handle processes GET /reports/{date}, date being YYYY.MM.DD.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req := getReportRequest{Date: chi.URLParam(r, "date")}
	if err := h.validate.Struct(req); err != nil {
		return errInvalidRequest("date must be YYYY.MM.DD", err)
	}

	report, err := h.reportService.Get(r.Context(), req.Date)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

// writeJSON encodes before writing the status line, so an encoding failure can still be
// reported as an error response.
func writeJSON(w http.ResponseWriter, status int, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return svcerrors.NewInternalErrorUndefined(err)
	}
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(data)
	return nil
}
