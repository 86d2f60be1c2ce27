package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceStage(trace *[]string, name string) Stage {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			*trace = append(*trace, name)
			return next(req)
		}
	}
}

func traceHandler(trace *[]string, name string) Handler {
	return func(_ *http.Request) (*http.Response, error) {
		*trace = append(*trace, name)
		return &http.Response{StatusCode: http.StatusOK}, nil
	}
}

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
}

func TestChainAppend(t *testing.T) {
	t.Run("entries run in append order", func(t *testing.T) {
		var trace []string

		chain := NewChain()
		chain.Append("first", traceStage(&trace, "first"))
		chain.Append("second", traceStage(&trace, "second"))
		chain.Append("third", traceStage(&trace, "third"))

		resp, err := chain.Resolve(traceHandler(&trace, "terminal"))(newTestRequest(t))
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, []string{"first", "second", "third", "terminal"}, trace)
		assert.Equal(t, []string{"first", "second", "third"}, chain.Labels())
	})

	t.Run("existing label is replaced in place", func(t *testing.T) {
		var trace []string

		chain := NewChain()
		chain.Append("a", traceStage(&trace, "a1"))
		chain.Append("b", traceStage(&trace, "b"))
		chain.Append("a", traceStage(&trace, "a2"))

		require.Equal(t, 2, chain.Len())
		assert.Equal(t, []string{"a", "b"}, chain.Labels())

		_, err := chain.Resolve(traceHandler(&trace, "terminal"))(newTestRequest(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "b", "terminal"}, trace)
	})
}

func TestChainInsertBefore(t *testing.T) {
	t.Run("inserts immediately before the target", func(t *testing.T) {
		var trace []string

		chain := NewChain()
		chain.Append("outer", traceStage(&trace, "outer"))
		chain.Append("history", traceStage(&trace, "history"))

		ok := chain.InsertBefore("history", "sign", traceStage(&trace, "sign"))
		require.True(t, ok)

		assert.Equal(t, []string{"outer", "sign", "history"}, chain.Labels())

		_, err := chain.Resolve(traceHandler(&trace, "terminal"))(newTestRequest(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"outer", "sign", "history", "terminal"}, trace)
	})

	t.Run("reports false and leaves chain unmodified when target missing", func(t *testing.T) {
		chain := NewChain()
		chain.Append("other", func(next Handler) Handler { return next })

		ok := chain.InsertBefore("history", "sign", func(next Handler) Handler { return next })
		assert.False(t, ok)
		assert.Equal(t, []string{"other"}, chain.Labels())
		assert.False(t, chain.Has("sign"))
	})

	t.Run("inserting before the first entry keeps order", func(t *testing.T) {
		chain := NewChain()
		chain.Append("history", func(next Handler) Handler { return next })

		ok := chain.InsertBefore("history", "sign", func(next Handler) Handler { return next })
		require.True(t, ok)
		assert.Equal(t, []string{"sign", "history"}, chain.Labels())
	})

	t.Run("existing label is replaced in place", func(t *testing.T) {
		var trace []string

		chain := NewChain()
		chain.Append("sign", traceStage(&trace, "sign1"))
		chain.Append("history", traceStage(&trace, "history"))

		ok := chain.InsertBefore("history", "sign", traceStage(&trace, "sign2"))
		require.True(t, ok)

		require.Equal(t, 2, chain.Len())
		assert.Equal(t, []string{"sign", "history"}, chain.Labels())

		_, err := chain.Resolve(traceHandler(&trace, "terminal"))(newTestRequest(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"sign2", "history", "terminal"}, trace)
	})
}

func TestChainClone(t *testing.T) {
	chain := NewChain()
	chain.Append("one", func(next Handler) Handler { return next })
	chain.Append("two", func(next Handler) Handler { return next })

	clone := chain.Clone()
	clone.Append("three", func(next Handler) Handler { return next })
	ok := clone.InsertBefore("one", "zero", func(next Handler) Handler { return next })
	require.True(t, ok)

	assert.Equal(t, []string{"one", "two"}, chain.Labels())
	assert.Equal(t, []string{"zero", "one", "two", "three"}, clone.Labels())
}

func TestChainResolve(t *testing.T) {
	t.Run("empty chain returns the fallback handler", func(t *testing.T) {
		var trace []string

		handler := NewChain().Resolve(traceHandler(&trace, "fallback"))
		_, err := handler(newTestRequest(t))
		require.NoError(t, err)

		assert.Equal(t, []string{"fallback"}, trace)
	})

	t.Run("own terminal wins over the fallback", func(t *testing.T) {
		var trace []string

		chain := WrapHandler(traceHandler(&trace, "own"))
		handler := chain.Resolve(traceHandler(&trace, "fallback"))
		_, err := handler(newTestRequest(t))
		require.NoError(t, err)

		assert.Equal(t, []string{"own"}, trace)
	})

	t.Run("stages wrap the wrapped handler", func(t *testing.T) {
		var trace []string

		chain := WrapHandler(traceHandler(&trace, "own"))
		chain.Append("stage", traceStage(&trace, "stage"))

		_, err := chain.Resolve(nil)(newTestRequest(t))
		require.NoError(t, err)

		assert.Equal(t, []string{"stage", "own"}, trace)
	})
}

func TestChainHas(t *testing.T) {
	chain := NewChain()
	assert.False(t, chain.Has("sign"))

	chain.Append("sign", func(next Handler) Handler { return next })
	assert.True(t, chain.Has("sign"))
	assert.False(t, chain.Has("history"))
}
