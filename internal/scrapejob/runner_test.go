package scrapejob

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunsEnqueuedJobs(t *testing.T) {
	r := NewRunner(2, zerolog.Nop())
	ran := make(chan int64, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx, func(_ context.Context, id int64) {
		ran <- id
	})

	require.True(t, r.Enqueue(1))
	require.True(t, r.Enqueue(2))

	assert.Equal(t, int64(1), <-ran)
	assert.Equal(t, int64(2), <-ran)
}

func TestRunner_EnqueueFullQueue(t *testing.T) {
	// No worker started, so the buffer is the whole capacity.
	r := NewRunner(1, zerolog.Nop())

	assert.True(t, r.Enqueue(1))
	assert.False(t, r.Enqueue(2))
}

func TestRunner_StopsOnCancel(t *testing.T) {
	r := NewRunner(1, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx, func(context.Context, int64) {})

	cancel()

	done := make(chan struct{})
	go func() {
		r.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after cancel")
	}
}
