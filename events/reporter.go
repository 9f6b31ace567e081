package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	Logger "github.com/realmkit/realmfeed/utils/log"
)

const (
	statsdDeltaCounter = "realmfeed.feed_delta"
)

// Reporter listens to the feed delta topic and forwards counters to
// statsd for monitoring. It is the only consumer of the event bus.
type Reporter struct {
	Statsd   *statsd.Client
	EventBus *FeedEventBus
}

func NewReporter(statsd *statsd.Client, bus *FeedEventBus) *Reporter {
	return &Reporter{
		Statsd:   statsd,
		EventBus: bus,
	}
}

// ProcessDeltas drains the delta topic until ctx is cancelled. Malformed
// messages are acked and skipped, a broken message must not wedge the
// stream.
func (r *Reporter) ProcessDeltas(ctx context.Context) error {
	messages, err := r.EventBus.SubscribeDeltas(ctx)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		var delta FeedDelta
		if err := json.Unmarshal(msg.Payload, &delta); err != nil {
			Logger.Log.Errorln("cannot unmarshal feed delta: ", err)
			continue
		}
		r.report(&delta)
	}

	return nil
}

func (r *Reporter) report(delta *FeedDelta) {
	tags := []string{
		fmt.Sprintf("kind:%s", delta.Kind),
		fmt.Sprintf("realm:%s", delta.RealmID),
		fmt.Sprintf("environment:%s", delta.Environment),
	}
	if err := r.Statsd.Incr(statsdDeltaCounter, tags, 1); err != nil {
		Logger.Log.Infoln("cannot report feed delta")
	}
}
