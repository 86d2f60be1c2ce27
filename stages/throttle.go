package stages

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/gridauth/edgegrid/pipeline"
)

// ThrottleLabel is the chain label of the throttle stage.
const ThrottleLabel = "throttle"

// Throttle returns a stage that waits for the limiter before forwarding each
// request. The wait honors the request context: cancellation or a deadline
// shorter than the required wait fails the request without consuming a token.
func Throttle(limiter *rate.Limiter) pipeline.Stage {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, err
			}

			return next(req)
		}
	}
}
