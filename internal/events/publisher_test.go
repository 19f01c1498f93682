package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisherRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "user-events")
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub, "user-events")
	err = publisher.Publish(ctx, TypeUserRegistered, UserEvent{
		UserID: "u1",
		Email:  "a@x.com",
		Role:   "seeker",
	})
	require.NoError(t, err)

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, TypeUserRegistered, msg.Metadata.Get("event_type"))

		var event Event
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, TypeUserRegistered, event.Type)
		assert.NotEmpty(t, event.ID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published event")
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	mock := NewMockEventPublisher(nil)
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, TypeUserProfileUpdated, UserEvent{UserID: "u1"}))
	require.NoError(t, mock.Publish(ctx, TypeUserRegistered, UserEvent{UserID: "u2"}))

	events := mock.GetPublishedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, TypeUserProfileUpdated, events[0].Type)
	assert.Equal(t, TypeUserRegistered, events[1].Type)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}
