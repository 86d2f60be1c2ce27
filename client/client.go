package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/gridauth/edgegrid/auth"
	"github.com/gridauth/edgegrid/pipeline"
)

// Client issues HTTP requests that carry an EdgeGrid signature. Every
// request runs through a pipeline whose signing stage replaces it with a
// signed copy just before the exchange.
//
// A Client is safe for concurrent use. The signer generates fresh
// timestamps and nonces per signature; pinned values are shared state, so
// callers that pin per call must issue those calls sequentially.
type Client struct {
	config Config

	signer  *auth.Signer
	baseURL *url.URL
	headers http.Header

	chain      *pipeline.Chain
	handler    pipeline.Handler
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a client from the configuration.
//
// The signer is resolved first: a caller-supplied Signer wins, then a
// default signer built from Credentials; neither fails with ErrNoSigner.
// Construction-time timestamp and nonce pins are applied to it. The base
// pipeline is assembled from the Handler option with the signing stage
// installed, and defaults are resolved: timeout, base URL scheme and host
// form, and the composed identifier header.
func New(cfg Config) (*Client, error) {
	signer := cfg.Signer
	if signer == nil {
		if cfg.Credentials == nil {
			return nil, ErrNoSigner
		}

		var err error
		if signer, err = auth.NewSigner(*cfg.Credentials); err != nil {
			return nil, err
		}
	}

	if !cfg.Timestamp.IsZero() {
		signer.SetTimestamp(cfg.Timestamp)
	}

	if cfg.Nonce != "" {
		signer.SetNonce(cfg.Nonce)
	}

	chain, err := assembleChain(cfg.Handler, signer)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var baseURL *url.URL
	if cfg.BaseURL != "" {
		if baseURL, err = normalizeBaseURL(cfg.BaseURL); err != nil {
			return nil, err
		}

		cfg.BaseURL = baseURL.String()
	}

	headers := make(http.Header, len(cfg.Headers)+1)
	mergeHeaders(headers, cfg.Headers)
	if headers.Get("User-Agent") == "" {
		headers.Set("User-Agent", userAgent)
	}
	cfg.Headers = headers

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		config:     cfg,
		signer:     signer,
		baseURL:    baseURL,
		headers:    headers,
		chain:      chain,
		httpClient: httpClient,
		logger:     logger,
	}
	c.handler = chain.Resolve(c.transport)

	c.logger.Debug("client configured",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
		zap.Strings("pipeline", chain.Labels()),
	)

	return c, nil
}

// Config returns a copy of the effective configuration: defaults applied,
// base URL normalized, identifier header injected.
func (c *Client) Config() Config {
	cfg := c.config
	cfg.Headers = c.headers.Clone()

	return cfg
}

// Signer returns the signer requests are signed with, for managing
// timestamp and nonce pins or rotating credentials.
func (c *Client) Signer() *auth.Signer {
	return c.signer
}

// Request issues a signed request and blocks until the response is
// available. The URI may be absolute or relative to the configured base
// URL; a query string embedded in the URI is extracted and merged with
// opts.Query.
//
// Before each call the signer's timestamp pin is reset, so the signature
// always carries a fresh timestamp. A nonce override in opts pins the
// nonce. A handler override in opts runs this call through a scoped
// pipeline of its own.
//
// The response body is open and must be closed by the caller, as with
// http.Client.
func (c *Client) Request(ctx context.Context, method, uri string, opts *RequestOptions) (*http.Response, error) {
	req, handler, err := c.prepare(ctx, method, uri, opts)
	if err != nil {
		return nil, err
	}

	return handler(req)
}

// Send issues a prebuilt request through the pipeline and blocks until the
// response is available. Unlike Request, the signer state is not
// refreshed: pinned timestamps and nonces stay in effect, which keeps
// signatures reproducible for replayed requests. Only the Handler option
// applies; the request is forwarded exactly as built.
func (c *Client) Send(req *http.Request, opts *RequestOptions) (*http.Response, error) {
	handler, err := c.sendHandler(opts)
	if err != nil {
		return nil, err
	}

	return handler(req)
}

// transport is the terminal pipeline handler: the exchange through the
// underlying HTTP client.
func (c *Client) transport(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// prepare runs the per-call normalization of Request and RequestAsync: it
// refreshes the signer state, assembles a scoped pipeline when the call
// overrides the handler, extracts the query embedded in the URI, and
// builds the outgoing request.
func (c *Client) prepare(ctx context.Context, method, uri string, opts *RequestOptions) (*http.Request, pipeline.Handler, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	// Timestamp pins never outlive a call; nonce pins are only touched
	// when the call overrides them.
	c.signer.ResetTimestamp()
	if opts.Nonce != "" {
		c.signer.SetNonce(opts.Nonce)
	}

	handler := c.handler
	if opts.Handler.isSet() {
		scoped, err := assembleChain(opts.Handler, c.signer)
		if err != nil {
			return nil, nil, err
		}

		handler = scoped.Resolve(c.transport)
		c.logger.Debug("scoped pipeline assembled", zap.Strings("pipeline", scoped.Labels()))
	}

	req, err := c.buildRequest(ctx, method, uri, opts)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("request prepared",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	return req, handler, nil
}

// sendHandler resolves the pipeline for Send and SendAsync: the base
// pipeline, or a scoped one when the call overrides the handler.
func (c *Client) sendHandler(opts *RequestOptions) (pipeline.Handler, error) {
	if opts == nil || !opts.Handler.isSet() {
		return c.handler, nil
	}

	scoped, err := assembleChain(opts.Handler, c.signer)
	if err != nil {
		return nil, err
	}

	return scoped.Resolve(c.transport), nil
}

// buildRequest resolves the URI against the base URL and applies query,
// headers, and body. A query string embedded in the URI is extracted into
// structured values first; explicit option values win per key. Splitting
// happens on the parsed URL, so multi-byte characters in the path or query
// can never be cut mid-rune.
func (c *Client) buildRequest(ctx context.Context, method, uri string, opts *RequestOptions) (*http.Request, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("client: parse uri %q: %w", uri, err)
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("client: parse query of %q: %w", uri, err)
	}
	u.RawQuery = ""
	u.ForceQuery = false

	for key, values := range opts.Query {
		query[key] = values
	}

	if !u.IsAbs() {
		switch {
		case c.baseURL != nil:
			u = c.baseURL.ResolveReference(u)
		case u.Host != "":
			// Scheme-relative URI without a base: default to the
			// secure scheme.
			u.Scheme = "https"
		default:
			return nil, fmt.Errorf("%w: %q", ErrRelativeURI, uri)
		}
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), opts.Body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}

	mergeHeaders(req.Header, c.headers)
	mergeHeaders(req.Header, opts.Headers)

	return req, nil
}
