package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan struct{}) bool {
	t.Helper()
	select {
	case _, ok := <-ch:
		return ok
	case <-time.After(time.Second):
		return false
	}
}

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish()

	assert.True(t, recv(t, ch1))
	assert.True(t, recv(t, ch2))
}

func TestBus_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})
	go func() {
		bus.Publish()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestBus_BurstCollapsesToOnePendingSignal(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish()
	bus.Publish()
	bus.Publish()

	require.True(t, recv(t, ch))
	select {
	case <-ch:
		t.Fatal("expected a burst to collapse into a single signal")
	default:
	}
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after cancel must not panic on the closed channel.
	bus.Publish()

	// Cancel is idempotent.
	cancel()
}
