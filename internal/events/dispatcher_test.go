package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/events"
)

func TestDispatcherFanOut(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var first, second int
	dispatcher.Subscribe(events.EventOutageReported, func(context.Context, events.Event) error {
		first++
		return nil
	})
	dispatcher.Subscribe(events.EventOutageReported, func(context.Context, events.Event) error {
		second++
		return nil
	})
	dispatcher.Subscribe(events.EventNotificationSent, func(context.Context, events.Event) error {
		t.Fatal("handler for unrelated event type invoked")
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventOutageReported})
	require.NoError(t, err)
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)
}

func TestDispatcherHandlerErrorDoesNotStopFanOut(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(events.EventOutageStatusChanged, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventOutageStatusChanged, func(context.Context, events.Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventOutageStatusChanged})
	require.NoError(t, err)
	require.True(t, reached)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventOutageReported})
	require.NoError(t, err)
}
