package utils

import (
	"github.com/DataDog/datadog-go/statsd"
	Logger "github.com/realmkit/realmfeed/utils/log"
)

// NewDogStatsdClient creates a statsd client against the local Datadog
// agent.
func NewDogStatsdClient() *statsd.Client {
	client, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		Logger.Log.Fatal("fail to create statsd client: ", err)
	}
	return client
}
