package sim

import "errors"

var (
	// ErrInvalidInput is returned when a request or run configuration is malformed.
	// The offending request is not admitted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCompletedRequests is returned by Run when no request completed,
	// so the mean completion time is undefined.
	ErrNoCompletedRequests = errors.New("no completed requests")

	// ErrInternalInconsistency marks a broken bookkeeping invariant.
	// The simulator panics with an error wrapping it; it is never returned.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrAlreadyRun is returned when Run is called twice on the same Simulator.
	ErrAlreadyRun = errors.New("simulator already run")
)
