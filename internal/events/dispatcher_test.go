package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(eventType EventType) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    uuid.NewString(),
		Email:     "a@esprit.tn",
		Timestamp: time.Now(),
	}
}

func TestPublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := newEvent(EventUserLoggedIn)
	require.NoError(t, d.Publish(context.Background(), event))
	require.Len(t, got, 1)
	assert.Equal(t, event.ID, got[0].ID)
}

func TestPublishIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), newEvent(EventGithubLinked)))
	assert.Zero(t, calls)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), newEvent(EventUserCreated)))
	assert.True(t, reached)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), newEvent(EventTokenRefreshed)))
}
