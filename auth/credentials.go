package auth

// DefaultMaxBody is the default cap, in bytes, on the request body prefix
// covered by the content hash.
const DefaultMaxBody = 131072

// Credentials are the API client credentials a Signer signs with.
type Credentials struct {
	// Host is the API host the credentials are scoped to, without scheme.
	Host string

	// ClientToken identifies the API client. Sent in the authorization
	// header.
	ClientToken string

	// ClientSecret is the shared secret the signing key is derived from.
	// Never sent on the wire.
	ClientSecret string

	// AccessToken identifies the client's authorizations. Sent in the
	// authorization header.
	AccessToken string

	// MaxBody caps the number of request body bytes covered by the content
	// hash. Defaults to DefaultMaxBody when zero.
	MaxBody int

	// HeadersToSign lists request headers included in the signature, in
	// signing order. Most APIs require none.
	HeadersToSign []string
}

// Validate checks that all required fields are present. The returned errors
// wrap ErrInvalidCredentials.
func (c Credentials) Validate() error {
	if c.Host == "" {
		return ErrMissingHost
	}

	if c.ClientToken == "" {
		return ErrMissingClientToken
	}

	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}

	if c.AccessToken == "" {
		return ErrMissingAccessToken
	}

	return nil
}

// maxBody returns the effective body cap.
func (c Credentials) maxBody() int {
	if c.MaxBody > 0 {
		return c.MaxBody
	}

	return DefaultMaxBody
}
