package utils

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/realmkit/realmfeed/model"
)

// RedisSyncStore records when each (realm, environment) pair was last
// synced against the external proposal registry. The syncer reads it to
// skip realms that were refreshed within the cadence window.
type RedisSyncStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

var ctx = context.Background()

func GetRedisSyncStore() (*RedisSyncStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &RedisSyncStore{
		inner:     redisClient,
		keyParser: RedisKeyParser{delimiter: "__"},
	}, nil
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeSyncKey(realmID string, env model.Environment) (string, error) {
	if !r.ValidateId(realmID) {
		return "", fmt.Errorf("invalid realm id %s", realmID)
	}
	return fmt.Sprintf("sync%s%s%s%s", r.delimiter, realmID, r.delimiter, env), nil
}

func (r RedisKeyParser) DecodeSyncKey(key string) (string, model.Environment, error) {
	splits := strings.Split(key, r.delimiter)
	if len(splits) != 3 {
		return "", "", fmt.Errorf("invalid key: %s", key)
	}
	return splits[1], model.Environment(splits[2]), nil
}

// GetLastSyncedAt returns the recorded last sync time, or the zero time
// when the pair has never been synced.
func (r *RedisSyncStore) GetLastSyncedAt(realmID string, env model.Environment) (time.Time, error) {
	key, err := r.keyParser.EncodeSyncKey(realmID, env)
	if err != nil {
		return time.Time{}, err
	}

	raw, err := r.inner.Get(ctx, key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}

// SetLastSyncedAt records a successful sync of the pair at the given time.
func (r *RedisSyncStore) SetLastSyncedAt(realmID string, env model.Environment, at time.Time) error {
	key, err := r.keyParser.EncodeSyncKey(realmID, env)
	if err != nil {
		return err
	}
	return r.inner.Set(ctx, key, at.Format(time.RFC3339), 0).Err()
}
