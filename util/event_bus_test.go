package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishFansOut(t *testing.T) {
	bus := NewEventBus()
	var calls int32
	for i := 0; i < 3; i++ {
		bus.Subscribe("alerts.raised", func(ctx context.Context, e Event) error {
			assert.Equal(t, "payload", e.Payload)
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}

	n := bus.Publish(context.Background(), "alerts.raised", "payload")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Drain(ctx))
	assert.Equal(t, 3, n)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.Equal(t, 0, bus.Publish(context.Background(), "nothing", nil))
}

func TestEventBusHandlerErrorIsQueued(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe("x", func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})

	bus.Publish(context.Background(), "x", nil)
	require.NoError(t, bus.Drain(context.Background()))

	select {
	case err := <-bus.Errors():
		assert.Contains(t, err.Error(), "boom")
	case <-time.After(time.Second):
		t.Fatal("expected handler error")
	}
}

func TestEventBusDrainTimeout(t *testing.T) {
	bus := NewEventBus()
	release := make(chan struct{})
	bus.Subscribe("slow", func(ctx context.Context, e Event) error {
		<-release
		return nil
	})
	bus.Publish(context.Background(), "slow", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Drain(ctx), context.DeadlineExceeded)
	close(release)
}
