package stages

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker(t *testing.T) {
	t.Run("passes successful requests through", func(t *testing.T) {
		handler := Breaker(NewBreaker("test"))(okHandler(http.StatusOK))

		resp, err := handler(stageRequest(t, "/"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delivers 5xx responses without error", func(t *testing.T) {
		handler := Breaker(NewBreaker("test"))(okHandler(http.StatusBadGateway))

		resp, err := handler(stageRequest(t, "/"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		wantErr := errors.New("dial tcp: connection refused")
		handler := Breaker(NewBreaker("test"))(errHandler(wantErr))

		_, err := handler(stageRequest(t, "/"))
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("opens after repeated server errors", func(t *testing.T) {
		calls := 0
		handler := Breaker(NewBreaker("test"))(func(*http.Request) (*http.Response, error) {
			calls++
			return &http.Response{StatusCode: http.StatusInternalServerError, Body: http.NoBody}, nil
		})

		for range breakerMinRequests {
			resp, err := handler(stageRequest(t, "/"))
			require.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		}

		_, err := handler(stageRequest(t, "/"))
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, breakerMinRequests, calls, "open breaker must not reach the transport")
	})

	t.Run("opens after repeated transport errors", func(t *testing.T) {
		handler := Breaker(NewBreaker("test"))(errHandler(errors.New("unreachable")))

		for range breakerMinRequests {
			_, err := handler(stageRequest(t, "/"))
			require.Error(t, err)
		}

		_, err := handler(stageRequest(t, "/"))
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	})
}
