package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/model"
)

const (
	// TopicFeedDelta carries one message per feed mutation: a vote applied
	// or a sync batch persisted.
	TopicFeedDelta = "feed_delta"
)

const (
	DeltaKindVote = "VOTE"
	DeltaKindSync = "SYNC"
)

// FeedDelta describes one mutation of the feed store. It is consumed by
// the reporter for monitoring, nothing in the serving path depends on it.
type FeedDelta struct {
	Kind        string            `json:"kind"`
	RealmID     string            `json:"realmId"`
	Environment model.Environment `json:"environment"`
	FeedItemID  string            `json:"feedItemId,omitempty"`
	Created     int               `json:"created,omitempty"`
	Updated     int               `json:"updated,omitempty"`
}

// FeedEventBus is a process local pub/sub for feed deltas, backed by a
// watermill go channel.
type FeedEventBus struct {
	inner *gochannel.GoChannel
}

func NewFeedEventBus() *FeedEventBus {
	return &FeedEventBus{
		inner: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

// PublishDelta emits a feed delta on the bus. Publishing is best effort
// from the caller's point of view; the serving path must not fail because
// monitoring does.
func (b *FeedEventBus) PublishDelta(delta *FeedDelta) error {
	payload, err := json.Marshal(delta)
	if err != nil {
		return errors.Wrap(err, "fail to marshal feed delta")
	}
	return b.inner.Publish(TopicFeedDelta, message.NewMessage(watermill.NewUUID(), payload))
}

// SubscribeDeltas returns the stream of feed deltas. The channel closes
// when ctx is cancelled.
func (b *FeedEventBus) SubscribeDeltas(ctx context.Context) (<-chan *message.Message, error) {
	return b.inner.Subscribe(ctx, TopicFeedDelta)
}

func (b *FeedEventBus) Close() error {
	return b.inner.Close()
}
