package auth

import (
	"net/http"
	"sync"
	"time"
)

// Signer produces signed copies of HTTP requests using EdgeGrid credentials.
//
// The zero value is usable: it starts without credentials, so Sign fails
// with ErrInvalidCredentials until SetCredentials supplies valid key
// material.
//
// A Signer is safe for concurrent use. Each Sign call snapshots the pinned
// state under a mutex and generates fresh values for whatever is not pinned,
// so concurrent signatures never observe another call's generated timestamp
// or nonce. Pins themselves are shared state: callers that re-pin between
// requests must serialize those requests to get deterministic pairings.
type Signer struct {
	mu        sync.Mutex
	creds     Credentials
	timestamp Timestamp
	nonce     string

	now      func() time.Time
	newNonce func() string
}

// NewSigner returns a Signer for the given credentials. The credentials are
// validated eagerly; the returned errors wrap ErrInvalidCredentials.
func NewSigner(creds Credentials) (*Signer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return &Signer{
		creds:    creds,
		now:      time.Now,
		newNonce: NewNonce,
	}, nil
}

// Credentials returns a copy of the signer's current credentials.
func (s *Signer) Credentials() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.creds
}

// SetCredentials replaces the signer's credentials. The new credentials are
// validated before the swap; on error the previous credentials stay active.
func (s *Signer) SetCredentials(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	return nil
}

// SetTimestamp pins the signature timestamp. Every subsequent signature uses
// the pinned value until ResetTimestamp is called. Pinning the zero value is
// equivalent to ResetTimestamp.
func (s *Signer) SetTimestamp(ts Timestamp) {
	s.mu.Lock()
	s.timestamp = ts
	s.mu.Unlock()
}

// ResetTimestamp clears a pinned timestamp, so each signature gets a fresh
// timestamp at signing time.
func (s *Signer) ResetTimestamp() {
	s.SetTimestamp(Timestamp{})
}

// SetNonce pins the signature nonce. Every subsequent signature uses the
// pinned value verbatim until ResetNonce is called. Pinning the empty string
// is equivalent to ResetNonce.
func (s *Signer) SetNonce(nonce string) {
	s.mu.Lock()
	s.nonce = nonce
	s.mu.Unlock()
}

// ResetNonce clears a pinned nonce, so each signature gets a fresh random
// nonce.
func (s *Signer) ResetNonce() {
	s.SetNonce("")
}

// Sign returns a signed copy of the request with the authorization header
// set. The input request is not modified; when GetBody is available the copy
// receives its own body so that content hashing does not consume the
// caller's body. A one-shot body without GetBody is transferred to the copy.
//
// The signature covers method, scheme, host, path with query, any configured
// signed headers, the content hash for POST bodies, and the authorization
// header fields themselves.
func (s *Signer) Sign(req *http.Request) (*http.Request, error) {
	s.mu.Lock()
	creds := s.creds
	ts := s.timestamp
	nonce := s.nonce
	now := s.now
	newNonce := s.newNonce
	s.mu.Unlock()

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	if ts.IsZero() {
		if now == nil {
			now = time.Now
		}
		ts = NewTimestamp(now())
	}

	if nonce == "" {
		if newNonce == nil {
			newNonce = NewNonce
		}
		nonce = newNonce()
	}

	if req.URL == nil {
		return nil, ErrRequestURLRequired
	}

	if req.URL.Scheme == "" || req.URL.Host == "" {
		return nil, ErrRelativeRequestURL
	}

	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	header := authHeader(creds, ts, nonce)

	data, err := buildDataToSign(clone, creds, header)
	if err != nil {
		return nil, err
	}

	signature := base64HMAC(signingKey(creds, ts), data)
	clone.Header.Set("Authorization", header+"signature="+signature)

	return clone, nil
}
