// Package pipeline implements an ordered chain of labeled stages around an
// HTTP request handler.
//
// A Stage decorates a Handler the way server middleware decorates an
// http.Handler, but on the client side: the terminal Handler performs the
// actual exchange and each stage may inspect or replace the outbound request
// and the inbound response. Stages are addressed by label, which allows
// callers to position a stage relative to another one:
//
//	chain := pipeline.NewChain()
//	chain.Append("history", recorder.Stage())
//	if !chain.InsertBefore("history", "sign", signingStage) {
//	    chain.Append("sign", signingStage)
//	}
//	handler := chain.Resolve(transport)
//
// A label is a unique slot: adding a stage under an existing label replaces
// the stage at its current position instead of introducing a duplicate.
// Entry order is execution order; the first entry is the outermost stage and
// the last entry runs closest to the terminal handler.
//
// A Chain is not safe for concurrent mutation. Share chains read-only and use
// Clone for per-call modifications.
package pipeline
