package models

import "errors"

var (
	// ErrMissingCredentials is returned when a carrier call is attempted
	// without API credentials configured. No network call is made.
	ErrMissingCredentials = errors.New("carrier API credentials are missing, please configure the shipping method")

	// ErrRateLimited is returned while the carrier's throttling window is
	// active; callers fail fast instead of queueing.
	ErrRateLimited = errors.New("carrier API rate limit exceeded, please try again later")

	// ErrCarrier is returned for a non-2xx carrier response. It is wrapped
	// with the message the carrier provided, or a synthesized one.
	ErrCarrier = errors.New("carrier API error")

	// ErrTransport is returned when the carrier could not be reached at all
	// (DNS, connection, timeout).
	ErrTransport = errors.New("carrier API is unreachable")
)

// ErrorResponse is the JSON error body for the HTTP surface.
type ErrorResponse struct {
	Message string `json:"message"`
}
