package ingestors

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

// Line-level codes label metrics and debug logs; they never fail a run.
const (
	codeInvalidMalformedLine   = "ING_1000"
	codeInvalidBadRequestField = "ING_1001"

	codeInternalLogReadFailed     = "ING_9000"
	codeInternalLogOpenFailed     = "ING_9001"
	codeInternalLineWorkersFailed = "ING_9002"
)

// errInvalidMalformedLine returns an error when a line cannot be tokenized or assigned to the record schema.
func errInvalidMalformedLine(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidMalformedLine, "malformed line", cause)
}

// errInvalidBadRequestField returns an error when a record has no usable URL or request time.
func errInvalidBadRequestField(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBadRequestField, "bad request field", cause)
}

// errInternalLogReadFailed returns an error when reading the log stream fails mid-way.
func errInternalLogReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogReadFailed, fmt.Errorf("logReadFailed: %w", cause))
}

// errInternalLogOpenFailed returns an error when the log file cannot be opened or its compression is corrupt.
func errInternalLogOpenFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogOpenFailed, fmt.Errorf("logOpenFailed: %w", cause))
}

// errInternalLineWorkersFailed returns an error when the partition workers cannot be set up.
func errInternalLineWorkersFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLineWorkersFailed, fmt.Errorf("lineWorkersFailed: %w", cause))
}
