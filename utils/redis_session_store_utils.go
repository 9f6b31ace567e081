package utils

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore resolves bearer tokens to member ids. Sessions are
// written by the identity subsystem; this service only reads them.
type RedisSessionStore struct {
	inner *redis.Client
}

const sessionKeyPrefix = "session__"

func GetRedisSessionStore() (*RedisSessionStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return &RedisSessionStore{inner: redisClient}, nil
}

// LookupUser returns the member id bound to the token, or empty when the
// token is unknown or expired.
func (r *RedisSessionStore) LookupUser(token string) (string, error) {
	userId, err := r.inner.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userId, nil
}
