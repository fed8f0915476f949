package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSystemRunsSubmittedTasks(t *testing.T) {
	js, err := NewJobSystem(2, 8)
	require.NoError(t, err)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		js.Go(func() {
			ran.Add(1)
		})
	}

	require.NoError(t, js.Shutdown())
	assert.Equal(t, int32(5), ran.Load())
}

func TestJobSystemFailureCallback(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)

	boom := errors.New("boom")
	failed := make(chan error, 1)
	js.Submit(JobTask{
		OnStart: func() error {
			return boom
		},
		OnFailure: func(err error) {
			failed <- err
		},
	})

	require.NoError(t, js.Shutdown())
	assert.Equal(t, boom, <-failed)
}

func TestJobSystemRejectsBadConfig(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}
