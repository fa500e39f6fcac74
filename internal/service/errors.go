package service

import "errors"

// User-actionable failure conditions surfaced by the API layer. Per-email
// enrichment failures are not part of this set; they stay inside the
// pipeline.
var (
	// ErrAuthenticationRequired means no usable credentials exist for the
	// user; they must go through the OAuth login first.
	ErrAuthenticationRequired = errors.New("authentication required, please login first")

	// ErrUserNotFound means the address has never authenticated.
	ErrUserNotFound = errors.New("user not found")

	// ErrUpstreamFetch wraps Gmail API failures; the request can be retried.
	ErrUpstreamFetch = errors.New("failed to fetch from Gmail, please retry")

	// ErrProcessingNotStarted means processing was requested before any
	// emails were fetched.
	ErrProcessingNotStarted = errors.New("no emails fetched yet, fetch before processing")

	// ErrProcessingInFlight means an enrichment job for this user is
	// already running.
	ErrProcessingInFlight = errors.New("processing already in progress for this user")
)
