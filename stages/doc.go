// Package stages provides ready-made pipeline stages for outbound request
// chains.
//
// # Signing Stage
//
// Sign replaces each outbound request with a signed copy. It is the stage
// the client installs automatically, exported for callers assembling chains
// by hand:
//
//	chain := pipeline.NewChain()
//	chain.Append(stages.SignLabel, stages.Sign(signer))
//
// # History Stage
//
// History records exchanges for inspection, which is mostly useful in tests
// and debugging. Its label is the positional anchor the client looks for
// when installing the signing stage, so recorded requests always carry the
// authorization header that was actually sent:
//
//	recorder := stages.NewHistory()
//	chain.Append(stages.HistoryLabel, recorder.Stage())
//
// # Operational Stages
//
// Logging, Throttle, Breaker, and Metrics wrap a chain with structured
// request logging, client-side rate limiting, a fail-fast circuit breaker,
// and Prometheus instrumentation:
//
//	chain.Append(stages.LoggingLabel, stages.Logging(logger))
//	chain.Append(stages.ThrottleLabel, stages.Throttle(rate.NewLimiter(10, 1)))
//	chain.Append(stages.BreakerLabel, stages.Breaker(stages.NewBreaker("papi")))
//
// Stages run in chain order, so an early Throttle also limits requests the
// Breaker would reject anyway; order them for the behavior you want.
package stages
