package regularization

import "errors"

// Regularization domain errors
var (
	ErrRequestNotFound         = errors.New("regularization request not found")
	ErrRequestAlreadyProcessed = errors.New("regularization request has already been approved or rejected")
	ErrPendingRequestExists    = errors.New("a pending regularization request already exists for this date")
)
