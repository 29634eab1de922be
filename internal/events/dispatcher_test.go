package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventDocumentUploaded, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDocumentUploaded, DocumentID: 7})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(7), got[0].DocumentID)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventDocumentDeleted, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventDocumentDeleted, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventDocumentDeleted}))
	require.Equal(t, 2, calls)
}

func TestDispatcher_IgnoresUnrelatedEvents(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventDocumentUpdated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventDocumentUploaded}))
	require.False(t, called)
}
