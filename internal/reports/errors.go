package reports

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeLogFileNotFound     = "RPT_1000"
	codeReportAlreadyExists = "RPT_1001"
	codeInvalidReportDate   = "RPT_1002"
	codeEmptyResult         = "RPT_1003"
	codeReportNotFound      = "RPT_1004"

	codeInternalLocateFailed = "RPT_9000"
	codeInternalStoreFailed  = "RPT_9001"
	codeInternalRenderFailed = "RPT_9002"
)

// errLogFileNotFound returns an error when the log dir holds no log to report on.
func errLogFileNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeLogFileNotFound, "no log file to analyze", cause)
}

// errReportAlreadyExists returns an error when the newest log already has a report.
func errReportAlreadyExists(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeReportAlreadyExists, fmt.Sprintf("report for %s already exists", date), cause)
}

// errInvalidReportDate returns an error when a report date is not YYYY.MM.DD.
func errInvalidReportDate(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportDate, fmt.Sprintf("invalid report date %q: want YYYY.MM.DD", date), cause)
}

// errEmptyResult returns an error when no URL has samples to report.
func errEmptyResult(date string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeEmptyResult, fmt.Sprintf("log for %s has no reportable requests", date), nil)
}

// errReportNotFound returns an error when a requested report does not exist.
func errReportNotFound(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report for %s not found", date), cause)
}

// errInternalLocateFailed returns an error when looking for the newest log fails.
func errInternalLocateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLocateFailed, fmt.Errorf("locateFailed: %w", cause))
}

// errInternalStoreFailed returns an error when a report store operation fails.
func errInternalStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}

// errInternalRenderFailed returns an error when the HTML page cannot be rendered.
func errInternalRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRenderFailed, fmt.Errorf("renderFailed: %w", cause))
}
