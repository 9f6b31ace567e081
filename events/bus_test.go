package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/realmkit/realmfeed/model"
	"github.com/stretchr/testify/require"
)

func TestFeedEventBusRoundTrip(t *testing.T) {
	bus := NewFeedEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe before publishing, the go channel bus has no persistence.
	messages, err := bus.SubscribeDeltas(ctx)
	require.NoError(t, err)

	published := &FeedDelta{
		Kind:        DeltaKindVote,
		RealmID:     "realm-1",
		Environment: model.EnvironmentMainnet,
		FeedItemID:  "item-1",
		Updated:     1,
	}
	require.NoError(t, bus.PublishDelta(published))

	select {
	case msg := <-messages:
		msg.Ack()
		var received FeedDelta
		require.NoError(t, json.Unmarshal(msg.Payload, &received))
		require.Equal(t, *published, received)
	case <-time.After(5 * time.Second):
		t.Fatal("no feed delta received")
	}
}

func TestFeedEventBusSubscriptionClosesWithContext(t *testing.T) {
	bus := NewFeedEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := bus.SubscribeDeltas(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-messages:
		require.False(t, open)
	case <-time.After(5 * time.Second):
		t.Fatal("subscription did not close")
	}
}
