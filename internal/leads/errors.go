package leads

import "errors"

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrDuplicateSubmission is returned when the same email submitted
	// within the duplicate window
	ErrDuplicateSubmission = errors.New("duplicate submission within window")
)
