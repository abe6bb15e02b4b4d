package service

import (
	"context"
	"errors"

	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

// classifyStoreError sorts datastore failures into the retryable and the
// fatal. Timeouts surface as UNAVAILABLE so callers know a retry is safe to
// attempt after confirming the original write did not commit.
func classifyStoreError(err error, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, message+": datastore timed out")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
