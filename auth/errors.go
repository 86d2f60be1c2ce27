package auth

import (
	"errors"
	"fmt"
)

// Credential errors. The specific variables wrap ErrInvalidCredentials, so
// errors.Is(err, ErrInvalidCredentials) matches the whole class.
var (
	// ErrInvalidCredentials is the class of credential validation failures.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrMissingHost is returned when Credentials.Host is empty.
	ErrMissingHost = fmt.Errorf("%w: host must not be empty", ErrInvalidCredentials)

	// ErrMissingClientToken is returned when Credentials.ClientToken is empty.
	ErrMissingClientToken = fmt.Errorf("%w: client token must not be empty", ErrInvalidCredentials)

	// ErrMissingClientSecret is returned when Credentials.ClientSecret is empty.
	ErrMissingClientSecret = fmt.Errorf("%w: client secret must not be empty", ErrInvalidCredentials)

	// ErrMissingAccessToken is returned when Credentials.AccessToken is empty.
	ErrMissingAccessToken = fmt.Errorf("%w: access token must not be empty", ErrInvalidCredentials)
)

// Signing errors.
var (
	// ErrRequestURLRequired is returned when a request passed to Sign has no
	// URL.
	ErrRequestURLRequired = errors.New("auth: request url must not be nil")

	// ErrRelativeRequestURL is returned when a request passed to Sign has a
	// URL without scheme or host. Signatures cover both, so only absolute
	// URLs can be signed.
	ErrRelativeRequestURL = errors.New("auth: request url must be absolute")
)

// ErrMalformedTimestamp is returned by ParseTimestamp when the value does not
// match the wire layout.
var ErrMalformedTimestamp = errors.New("auth: malformed timestamp")
