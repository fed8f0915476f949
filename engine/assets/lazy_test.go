package assets

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncExecutor runs tasks inline, which is all the lazy cache needs in
// tests.
type syncExecutor struct{}

func (syncExecutor) Go(task func()) {
	task()
}

type countingRequest struct {
	key   string
	runs  *atomic.Int32
	value interface{}
	err   error
}

func (r *countingRequest) CacheKey() string {
	return r.key
}

func (r *countingRequest) Run() (interface{}, error) {
	r.runs.Add(1)
	return r.value, r.err
}

func TestLazyCacheMemoizesPerKey(t *testing.T) {
	cache := NewLazyCache(syncExecutor{})

	var runs atomic.Int32
	first := &countingRequest{key: "k", runs: &runs, value: "payload"}
	second := &countingRequest{key: "k", runs: &runs, value: "payload"}

	h1 := cache.Submit(first)
	h2 := cache.Submit(second)

	v1, err := h1.Eval()
	require.NoError(t, err)
	v2, err := h2.Eval()
	require.NoError(t, err)

	assert.Equal(t, "payload", v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(1), runs.Load())
}

func TestLazyCacheDistinctKeysRunSeparately(t *testing.T) {
	cache := NewLazyCache(syncExecutor{})

	var runs atomic.Int32
	h1 := cache.Submit(&countingRequest{key: "a", runs: &runs, value: 1})
	h2 := cache.Submit(&countingRequest{key: "b", runs: &runs, value: 2})

	v1, err := h1.Eval()
	require.NoError(t, err)
	v2, err := h2.Eval()
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
	assert.Equal(t, int32(2), runs.Load())
}

func TestLazyCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewLazyCache(syncExecutor{})

	var runs atomic.Int32
	boom := errors.New("decode failed")

	_, err := cache.Submit(&countingRequest{key: "k", runs: &runs, err: boom}).Eval()
	require.ErrorIs(t, err, boom)

	// The failed entry is evicted; an identical request retries and can
	// succeed.
	v, err := cache.Submit(&countingRequest{key: "k", runs: &runs, value: "ok"}).Eval()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), runs.Load())
}
