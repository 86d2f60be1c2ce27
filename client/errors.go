package client

import "errors"

// Construction errors. New fails fast on configuration problems instead of
// deferring them to the first request.
var (
	// ErrNoSigner is returned when Config carries neither a Signer nor
	// Credentials to build one from.
	ErrNoSigner = errors.New("client: signer or credentials required")

	// ErrInvalidHandler is returned when a handler option is present but
	// carries a nil chain or nil function.
	ErrInvalidHandler = errors.New("client: handler option must carry a chain or a function")

	// ErrInvalidBaseURL is returned when the base URL cannot be parsed or
	// has no host.
	ErrInvalidBaseURL = errors.New("client: invalid base url")
)

// ErrRelativeURI is returned when a request URI is relative and no base URL
// is configured to resolve it against.
var ErrRelativeURI = errors.New("client: relative uri requires a base url")
