package stages

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/gridauth/edgegrid/pipeline"
)

// BreakerLabel is the chain label of the circuit breaker stage.
const BreakerLabel = "breaker"

// Trip policy for breakers built with NewBreaker.
const (
	breakerMinRequests  = 5
	breakerFailureRatio = 0.5
)

// serverStatusError marks a 5xx response as a breaker failure while keeping
// the response itself deliverable to the caller.
type serverStatusError struct {
	status int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("server status %d", e.status)
}

// NewBreaker returns a circuit breaker with the default trip policy: the
// breaker opens once at least five requests have been observed and half of
// them failed. Use gobreaker.NewCircuitBreaker directly for custom settings.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailureRatio
		},
	})
}

// Breaker returns a stage that runs each request through the circuit
// breaker. Transport errors and 5xx responses count as failures; 5xx
// responses are still delivered to the caller as responses. While the
// breaker is open, requests fail immediately with gobreaker.ErrOpenState
// without reaching the transport.
func Breaker(cb *gobreaker.CircuitBreaker) pipeline.Stage {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			result, err := cb.Execute(func() (any, error) {
				resp, err := next(req)
				if err != nil {
					return nil, err
				}

				if resp.StatusCode >= http.StatusInternalServerError {
					return resp, &serverStatusError{status: resp.StatusCode}
				}

				return resp, nil
			})

			resp, _ := result.(*http.Response)

			if err != nil {
				var statusErr *serverStatusError
				if errors.As(err, &statusErr) {
					return resp, nil
				}

				return nil, err
			}

			return resp, nil
		}
	}
}
