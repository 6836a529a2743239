package http

import (
	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeInvalidRequest = "HTTP_1000"
)

// errInvalidRequest returns an error when path or query parameters fail validation.
func errInvalidRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRequest, msg, cause)
}
