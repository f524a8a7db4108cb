package service

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher(t *testing.T) {
	commands := []nav.MotionCommand{
		{Kind: nav.Forward, Duration: time.Second},
		{Kind: nav.TurnRight, Duration: 800 * time.Millisecond},
		{Kind: nav.Forward, Duration: time.Second},
	}

	t.Run("dispatches in order", func(t *testing.T) {
		exec := newRecordingExecutor()
		d := NewDispatcher(exec, 0, quietLogger())

		n, err := d.Dispatch(context.Background(), commands)
		require.NoError(t, err)
		assert.Equal(t, len(commands), n)

		got, stops := exec.received()
		assert.Equal(t, commands, got)
		assert.Zero(t, stops)
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		exec := newRecordingExecutor()
		d := NewDispatcher(exec, time.Hour, quietLogger())

		n, err := d.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("stops at first executor failure", func(t *testing.T) {
		exec := newRecordingExecutor()
		exec.failAt = 1
		d := NewDispatcher(exec, 0, quietLogger())

		n, err := d.Dispatch(context.Background(), commands)
		assert.Equal(t, 1, n)
		assert.ErrorIs(t, err, ErrExecutorFailure)
		assert.ErrorIs(t, err, errMotorFault)

		got, _ := exec.received()
		assert.Len(t, got, 2)
	})

	t.Run("waits the settle delay between commands", func(t *testing.T) {
		exec := newRecordingExecutor()
		d := NewDispatcher(exec, 20*time.Millisecond, quietLogger())

		began := time.Now()
		_, err := d.Dispatch(context.Background(), commands)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(began), 60*time.Millisecond)
	})

	t.Run("cancelled context ends the run", func(t *testing.T) {
		exec := newRecordingExecutor()
		exec.blockAt = 1
		d := NewDispatcher(exec, 0, quietLogger())

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-exec.started
			cancel()
		}()

		n, err := d.Dispatch(ctx, commands)
		assert.Equal(t, 1, n)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrExecutorFailure)
	})

	t.Run("cancel during settle delay", func(t *testing.T) {
		exec := newRecordingExecutor()
		d := NewDispatcher(exec, time.Hour, quietLogger())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		n, err := d.Dispatch(ctx, commands)
		assert.Equal(t, 1, n)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
