package stages

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gridauth/edgegrid/pipeline"
)

// LoggingLabel is the chain label of the logging stage.
const LoggingLabel = "logging"

// Logging returns a stage that logs each exchange with method, URL, status,
// and duration. Header contents are never logged, so signed authorization
// headers cannot leak into logs. A nil logger disables output.
func Logging(logger *zap.Logger) pipeline.Stage {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next(req)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", req.URL.Redacted()),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				logger.Error("request failed", append(fields, zap.Error(err))...)
				return resp, err
			}

			logger.Info("request completed", append(fields, zap.Int("status", resp.StatusCode))...)

			return resp, err
		}
	}
}
