package pipeline

import "net/http"

// Handler executes an HTTP request and returns the response. It is the
// client-side counterpart of http.Handler: the innermost Handler of a chain
// performs the actual exchange, typically by delegating to an http.Client.
type Handler func(req *http.Request) (*http.Response, error)

// Stage wraps a Handler with additional behavior. A stage may modify or
// replace the request before calling next and may inspect or replace the
// response on the way back.
type Stage func(next Handler) Handler

type entry struct {
	label string
	stage Stage
}

// Chain is an ordered sequence of labeled stages around an optional terminal
// Handler. The zero value is not usable; create chains with NewChain or
// WrapHandler.
type Chain struct {
	entries  []entry
	terminal Handler
}

// NewChain returns an empty chain with no terminal handler.
func NewChain() *Chain {
	return &Chain{}
}

// WrapHandler returns a new chain whose terminal handler is h. Stages added
// to the chain wrap around h.
func WrapHandler(h Handler) *Chain {
	return &Chain{terminal: h}
}

// Append adds a stage at the end of the chain, closest to the terminal
// handler. If the label is already present, the existing entry is replaced
// in place and keeps its position.
func (c *Chain) Append(label string, stage Stage) {
	if i := c.index(label); i >= 0 {
		c.entries[i].stage = stage
		return
	}

	c.entries = append(c.entries, entry{label: label, stage: stage})
}

// InsertBefore adds a stage immediately before the entry with the target
// label and reports whether the target was found. When the target is absent
// the chain is left unmodified and the caller decides the fallback,
// typically Append.
//
// If the label is already present, the existing entry is replaced in place
// and keeps its position regardless of target.
func (c *Chain) InsertBefore(target, label string, stage Stage) bool {
	if i := c.index(label); i >= 0 {
		c.entries[i].stage = stage
		return c.index(target) >= 0
	}

	i := c.index(target)
	if i < 0 {
		return false
	}

	c.entries = append(c.entries, entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry{label: label, stage: stage}

	return true
}

// Has reports whether the chain contains an entry with the given label.
func (c *Chain) Has(label string) bool {
	return c.index(label) >= 0
}

// Len returns the number of stages in the chain.
func (c *Chain) Len() int {
	return len(c.entries)
}

// Labels returns the stage labels in execution order.
func (c *Chain) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.label
	}

	return labels
}

// Clone returns an independent copy of the chain. Mutating the copy does not
// affect the original; the terminal handler is shared.
func (c *Chain) Clone() *Chain {
	clone := &Chain{
		entries:  make([]entry, len(c.entries)),
		terminal: c.terminal,
	}
	copy(clone.entries, c.entries)

	return clone
}

// Resolve composes the chain into a single Handler. The chain's own terminal
// handler is used when set, otherwise fallback. Stages wrap the terminal in
// reverse entry order, so the first entry becomes the outermost stage.
func (c *Chain) Resolve(fallback Handler) Handler {
	handler := c.terminal
	if handler == nil {
		handler = fallback
	}

	for i := len(c.entries) - 1; i >= 0; i-- {
		handler = c.entries[i].stage(handler)
	}

	return handler
}

func (c *Chain) index(label string) int {
	for i, e := range c.entries {
		if e.label == label {
			return i
		}
	}

	return -1
}
