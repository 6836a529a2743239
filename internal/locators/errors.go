package locators

import (
	"errors"
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

var ErrLogFileNotFound = errors.New("log file not found")

const (
	codeInternalLogDirScanFailed = "LOC_9000"
)

// errInternalLogDirScanFailed returns an error when the log dir exists but cannot be listed.
func errInternalLogDirScanFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogDirScanFailed, fmt.Errorf("logDirScanFailed: %w", cause))
}
