package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/idna"

	"github.com/gridauth/edgegrid/auth"
)

// DefaultTimeout is the request timeout applied when Config.Timeout is
// zero.
const DefaultTimeout = 300 * time.Second

// Config is the construction surface of New. The zero value of every field
// is valid; a usable config needs at least a Signer or Credentials.
type Config struct {
	// BaseURL is the URL request URIs are resolved against. A non-empty
	// value without a scheme separator is prefixed with https:// and the
	// host is normalized to its punycode form; Config reports the
	// normalized value. Empty means every request URI must be absolute.
	BaseURL string

	// Timeout bounds each request end to end. Defaults to DefaultTimeout
	// when zero. It configures the default HTTP client only; a
	// caller-supplied HTTPClient keeps its own timeout.
	Timeout time.Duration

	// Headers are sent with every request. When no User-Agent entry is
	// present, the composed client identifier is injected.
	Headers http.Header

	// Handler is the base pipeline the signing stage is installed into.
	// Not set means a fresh chain holding only the signing stage.
	Handler HandlerOption

	// Signer signs outgoing requests. When nil, a signer is built from
	// Credentials.
	Signer *auth.Signer

	// Credentials build the default signer when Signer is nil.
	Credentials *auth.Credentials

	// Timestamp pins the signature timestamp at construction. Request and
	// RequestAsync reset the pin on every call, so it effectively governs
	// only Send and SendAsync.
	Timestamp auth.Timestamp

	// Nonce pins the signature nonce at construction. The pin is sticky
	// until reset on the signer.
	Nonce string

	// HTTPClient performs the exchanges at the end of the pipeline.
	// Defaults to a client with the effective timeout.
	HTTPClient *http.Client

	// Logger receives debug logs about request preparation and pipeline
	// assembly. Defaults to a nop logger.
	Logger *zap.Logger
}

// normalizeBaseURL parses a base URL, defaulting the scheme to https when
// no scheme separator is present and converting the host to its punycode
// form. Hosts the IDNA lookup profile rejects are kept as given.
func normalizeBaseURL(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidBaseURL, raw)
	}

	host := u.Hostname()
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != host {
		if port := u.Port(); port != "" {
			u.Host = ascii + ":" + port
		} else {
			u.Host = ascii
		}
	}

	return u, nil
}
