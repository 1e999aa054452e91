package booking

import "errors"

var (
	// ErrNoActiveDraft distinguishes "nothing to submit" from a submission
	// rejected by the backend.
	ErrNoActiveDraft = errors.New("no active booking draft")

	// ErrConfirmInFlight rejects a second confirm while one is already
	// running for the same draft.
	ErrConfirmInFlight = errors.New("booking confirmation already in progress")
)
