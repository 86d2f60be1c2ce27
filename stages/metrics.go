package stages

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gridauth/edgegrid/pipeline"
)

// MetricsLabel is the chain label of the metrics stage.
const MetricsLabel = "metrics"

// Metrics instruments the requests flowing through its stage.
type Metrics struct {
	// requestsTotal counts completed requests by method and status. Failed
	// exchanges are counted under status "error".
	requestsTotal *prometheus.CounterVec

	// requestDuration measures exchange duration by method.
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates request metrics registered with reg. A nil registerer
// defaults to prometheus.DefaultRegisterer. When the metrics are already
// registered, the existing collectors are adopted, so multiple clients
// sharing one registry report into the same series. Any other registration
// failure panics, as MustRegister would.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgegrid",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of completed requests by method and status",
		},
		[]string{"method", "status"},
	)
	if err := reg.Register(requestsTotal); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		requestsTotal = are.ExistingCollector.(*prometheus.CounterVec)
	}

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "edgegrid",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds by method",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)
	if err := reg.Register(requestDuration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		requestDuration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &Metrics{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// Stage returns the instrumenting stage.
func (m *Metrics) Stage() pipeline.Stage {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next(req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}

			m.requestsTotal.WithLabelValues(req.Method, status).Inc()
			m.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
