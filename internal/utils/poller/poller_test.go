package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller(t *testing.T) {
	t.Run("polls until stopped", func(t *testing.T) {
		var calls atomic.Int64
		p := NewPoller(time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})

		done := make(chan struct{})
		go func() {
			p.Start(context.Background())
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return calls.Load() >= 3
		}, time.Second, time.Millisecond)

		p.Stop()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("poller did not stop")
		}
	})

	t.Run("keeps polling after errors", func(t *testing.T) {
		var calls atomic.Int64
		p := NewPoller(time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("poll failed")
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Start(ctx)

		assert.Eventually(t, func() bool {
			return calls.Load() >= 2
		}, time.Second, time.Millisecond)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		p := NewPoller(time.Millisecond, func(ctx context.Context) error {
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			p.Start(ctx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("poller did not stop on cancellation")
		}
	})
}
