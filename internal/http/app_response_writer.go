package http

import (
	"net/http"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter is a wrapper around the http.ResponseWriter that stores app details for middleware access
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// statusOf returns the status written so far, 200 when the handler wrote nothing explicit.
func statusOf(w http.ResponseWriter) int {
	status := 0
	if appWriter, ok := w.(*appResponseWriter); ok {
		status = appWriter.Status()
	}
	if status == 0 {
		status = http.StatusOK
	}
	return status
}

// errorCodeOf returns the service error code set by the error adapter, if any.
func errorCodeOf(w http.ResponseWriter) string {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.ErrorCode()
	}
	return ""
}
