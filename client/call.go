package client

import (
	"context"
	"net/http"
)

// Call is an in-flight asynchronous request. By the time a Call exists,
// the per-call normalization has already run synchronously; the Call
// covers only the pipeline and transport phase.
type Call struct {
	done chan struct{}
	resp *http.Response
	err  error
}

func newCall() *Call {
	return &Call{done: make(chan struct{})}
}

// failedCall returns an already-completed call carrying a normalization
// error.
func failedCall(err error) *Call {
	call := newCall()
	call.complete(nil, err)

	return call
}

func (c *Call) complete(resp *http.Response, err error) {
	c.resp = resp
	c.err = err
	close(c.done)
}

// Done returns a channel that is closed once the outcome is available.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Response blocks until the call completes and returns its outcome. The
// response body is open and must be closed by the caller.
func (c *Call) Response() (*http.Response, error) {
	<-c.done

	return c.resp, c.err
}

// Err blocks until the call completes and returns its error, if any.
func (c *Call) Err() error {
	<-c.done

	return c.err
}

// RequestAsync issues a signed request without blocking. The per-call
// normalization of Request runs before RequestAsync returns, so signer
// state is already refreshed for this call when the next one starts;
// failures during normalization are delivered through the returned Call.
//
// Cancel the context to abandon the exchange.
func (c *Client) RequestAsync(ctx context.Context, method, uri string, opts *RequestOptions) *Call {
	req, handler, err := c.prepare(ctx, method, uri, opts)
	if err != nil {
		return failedCall(err)
	}

	call := newCall()
	go func() {
		call.complete(handler(req))
	}()

	return call
}

// SendAsync issues a prebuilt request without blocking; the semantics are
// those of Send.
func (c *Client) SendAsync(req *http.Request, opts *RequestOptions) *Call {
	handler, err := c.sendHandler(opts)
	if err != nil {
		return failedCall(err)
	}

	call := newCall()
	go func() {
		call.complete(handler(req))
	}()

	return call
}
