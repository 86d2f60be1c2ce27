package stages

import (
	"net/http"
	"sync"

	"github.com/gridauth/edgegrid/pipeline"
)

// HistoryLabel is the chain label of the history stage. The client inserts
// the signing stage immediately before this label when present.
const HistoryLabel = "history"

// Exchange is one recorded request/response pair. Err carries the transport
// error when the exchange failed; Response is nil in that case.
type Exchange struct {
	Request  *http.Request
	Response *http.Response
	Err      error
}

// History records the exchanges flowing through its stage. Safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	entries []Exchange
}

// NewHistory returns an empty exchange recorder.
func NewHistory() *History {
	return &History{}
}

// Stage returns the recording stage. Requests are recorded as seen by this
// stage, so placing it after the signing stage captures signed requests.
func (h *History) Stage() pipeline.Stage {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)

			h.mu.Lock()
			h.entries = append(h.entries, Exchange{Request: req, Response: resp, Err: err})
			h.mu.Unlock()

			return resp, err
		}
	}
}

// Entries returns a copy of the recorded exchanges in order.
func (h *History) Entries() []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]Exchange, len(h.entries))
	copy(entries, h.entries)

	return entries
}

// Last returns the most recent exchange and whether one has been recorded.
func (h *History) Last() (Exchange, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return Exchange{}, false
	}

	return h.entries[len(h.entries)-1], true
}

// Len returns the number of recorded exchanges.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Reset discards all recorded exchanges.
func (h *History) Reset() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}
