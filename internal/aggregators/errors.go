package aggregators

import (
	"errors"
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeUnprocessableTooManyErrors = "AGG_1000"
)

// ErrTooManyErrors is the cause of the AGG_1000 service error.
var ErrTooManyErrors = errors.New("too many errors")

// errUnprocessableTooManyErrors returns an error when the share of rejected lines exceeds the threshold.
func errUnprocessableTooManyErrors(errorRate, threshold float64) *svcerrors.ServiceError {
	return svcerrors.NewUnprocessableError(
		codeUnprocessableTooManyErrors,
		fmt.Sprintf("error rate %.3f%% exceeds threshold %.3f%%", errorRate, threshold),
		fmt.Errorf("%w: %.3f%% > %.3f%%", ErrTooManyErrors, errorRate, threshold),
	)
}
