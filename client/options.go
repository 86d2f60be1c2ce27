package client

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gridauth/edgegrid/pipeline"
)

// HandlerOption selects what a request pipeline is built around: a prebuilt
// chain or a raw handler function. The zero value means "not set" and
// leaves the client's base pipeline in charge.
type HandlerOption struct {
	set   bool
	chain *pipeline.Chain
	fn    pipeline.Handler
}

// ChainHandler returns a handler option carrying a prebuilt chain. The
// chain is cloned when the pipeline is assembled, so the caller's instance
// is never modified.
func ChainHandler(chain *pipeline.Chain) HandlerOption {
	return HandlerOption{set: true, chain: chain}
}

// FuncHandler returns a handler option carrying a raw handler function. The
// function becomes the terminal handler of a fresh chain when the pipeline
// is assembled.
func FuncHandler(fn pipeline.Handler) HandlerOption {
	return HandlerOption{set: true, fn: fn}
}

// isSet reports whether the option was explicitly provided.
func (o HandlerOption) isSet() bool {
	return o.set
}

// resolve returns an independent chain for the option: a clone of the
// prebuilt chain, a fresh chain around the function, or a new empty chain
// when the option is not set. An option that was provided but carries
// neither a chain nor a function fails with ErrInvalidHandler.
func (o HandlerOption) resolve() (*pipeline.Chain, error) {
	switch {
	case !o.set:
		return pipeline.NewChain(), nil
	case o.chain != nil:
		return o.chain.Clone(), nil
	case o.fn != nil:
		return pipeline.WrapHandler(o.fn), nil
	default:
		return nil, ErrInvalidHandler
	}
}

// RequestOptions are the per-call options of Request, RequestAsync, Send,
// and SendAsync. A nil *RequestOptions is valid and means "no options".
type RequestOptions struct {
	// Query values are merged with any query string embedded in the
	// request URI. On key collisions the explicit values here win.
	Query url.Values

	// Headers are merged over the client's configured headers, replacing
	// per key.
	Headers http.Header

	// Body is the request body. Readers with replayable content (bytes
	// and strings readers) keep the body available to the content hash
	// without consuming it.
	Body io.Reader

	// Nonce pins the signature nonce. Pins are sticky on the signer:
	// later calls keep signing with this nonce until it is reset or
	// overridden. Honored by Request and RequestAsync only.
	Nonce string

	// Handler replaces the pipeline for this call. The signing stage is
	// installed into a scoped copy; the client's base pipeline is not
	// touched.
	Handler HandlerOption
}

// mergeHeaders copies src into dst, replacing existing values per key.
func mergeHeaders(dst, src http.Header) {
	for key, values := range src {
		dst.Del(key)
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
